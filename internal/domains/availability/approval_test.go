package availability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icpac/internal/domains/availability"
)

func TestApprovalStatus_Transition(t *testing.T) {
	tests := []struct {
		from    availability.ApprovalStatus
		to      availability.ApprovalStatus
		wantErr bool
	}{
		{from: availability.Pending, to: availability.Approved},
		{from: availability.Pending, to: availability.Rejected},
		{from: availability.Pending, to: availability.Pending, wantErr: true},
		{from: availability.Approved, to: availability.Rejected, wantErr: true},
		{from: availability.Approved, to: availability.Approved, wantErr: true},
		{from: availability.Rejected, to: availability.Approved, wantErr: true},
		{from: availability.Rejected, to: availability.Pending, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			got, err := tt.from.Transition(tt.to)
			if tt.wantErr {
				var transitionErr *availability.TransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, tt.from, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestApprovalStatus_Terminal(t *testing.T) {
	assert.False(t, availability.Pending.Terminal())
	assert.True(t, availability.Approved.Terminal())
	assert.True(t, availability.Rejected.Terminal())
	assert.False(t, availability.ApprovalStatus("cancelled").Terminal())
}

func TestStatusFilter(t *testing.T) {
	assert.True(t, availability.FilterActive.Matches(availability.Pending))
	assert.True(t, availability.FilterActive.Matches(availability.Approved))
	assert.False(t, availability.FilterActive.Matches(availability.Rejected))

	assert.True(t, availability.FilterAll.Matches(availability.Rejected))

	approvedOnly := availability.FilterStatus(availability.Approved)
	assert.True(t, approvedOnly.Matches(availability.Approved))
	assert.False(t, approvedOnly.Matches(availability.Pending))
}

func TestParseStatusFilter(t *testing.T) {
	f, err := availability.ParseStatusFilter("")
	require.NoError(t, err)
	assert.True(t, f.Default())

	f, err = availability.ParseStatusFilter("all")
	require.NoError(t, err)
	assert.Equal(t, availability.FilterAll, f)
	assert.Equal(t, "all", f.String())

	f, err = availability.ParseStatusFilter("rejected")
	require.NoError(t, err)
	assert.Equal(t, "rejected", f.String())
	assert.False(t, f.Default())

	_, err = availability.ParseStatusFilter("cancelled")
	assert.Error(t, err)
}
