package validator_test

import (
	"icpac/shared/failure"
	"icpac/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingRequest struct {
	RoomID    int64  `json:"room_id"    validate:"required,gt=0"`
	Type      string `json:"type"       validate:"required,oneof=hourly full_day multi_day weekly"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"omitempty,quarterhour"`
	Attendees int    `json:"attendees"  validate:"gte=1,lte=200"`
	Email     string `json:"email"      validate:"omitempty,email"`
}

func validRequest() bookingRequest {
	return bookingRequest{
		RoomID:    1,
		Type:      "hourly",
		StartDate: "2030-06-03",
		StartTime: "09:30",
		Attendees: 4,
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(r *bookingRequest)
		expectError string
	}{
		{name: "valid request", mutate: func(_ *bookingRequest) {}},
		{name: "missing room", mutate: func(r *bookingRequest) { r.RoomID = 0 }, expectError: "room_id is required"},
		{name: "unknown type", mutate: func(r *bookingRequest) { r.Type = "monthly" }, expectError: "type must be one of hourly full_day multi_day weekly"},
		{name: "bad date", mutate: func(r *bookingRequest) { r.StartDate = "03/06/2030" }, expectError: "start_date must match the format 2006-01-02"},
		{name: "off-grid time", mutate: func(r *bookingRequest) { r.StartTime = "09:10" }, expectError: "start_time must be a 15-minute slot between 08:00 and 18:00"},
		{name: "time before opening", mutate: func(r *bookingRequest) { r.StartTime = "07:45" }, expectError: "start_time must be a 15-minute slot"},
		{name: "end marker accepted", mutate: func(r *bookingRequest) { r.StartTime = "18:00" }},
		{name: "empty time skipped", mutate: func(r *bookingRequest) { r.StartTime = "" }},
		{name: "too many attendees", mutate: func(r *bookingRequest) { r.Attendees = 201 }, expectError: "attendees must be less than or equal to 200"},
		{name: "invalid email", mutate: func(r *bookingRequest) { r.Email = "nope" }, expectError: "email must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.expectError == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "quarter hour ok", field: "17:45", tag: "quarterhour"},
		{name: "quarter hour off grid", field: "12:05", tag: "quarterhour", expectError: true},
		{name: "quarter hour after close", field: "18:15", tag: "quarterhour", expectError: true},
		{name: "quarter hour non string", field: 9, tag: "quarterhour", expectError: true},
		{name: "date ok", field: "2030-06-03", tag: "datetime=2006-01-02"},
		{name: "required empty", field: "", tag: "required", expectError: true},
		{name: "empty tag on zero", field: "", tag: "empty"},
		{name: "empty tag on value", field: "x", tag: "empty", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name: "valid json",
			body: `{"room_id":1,"type":"full_day","start_date":"2030-06-03","attendees":10}`,
		},
		{
			name:        "malformed json",
			body:        `{"room_id":`,
			expectError: true,
		},
		{
			name:        "valid json failing validation",
			body:        `{"room_id":1,"type":"full_day","start_date":"2030-06-03","start_time":"08:20","attendees":10}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req bookingRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1), req.RoomID)
		})
	}
}
