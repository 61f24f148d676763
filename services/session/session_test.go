package session

import (
	"sync"
	"testing"
	"time"

	"voicebook/models"
	"voicebook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()

	s := r.Create()
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	r.Destroy(s.ID())
	assert.Equal(t, 0, r.Len())
	_, err = r.Get(s.ID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryIsolatesSessions(t *testing.T) {
	r := NewRegistry()
	a := r.Create()
	b := r.Create()
	require.NotEqual(t, a.ID(), b.ID())

	require.NoError(t, a.Identify("+15551111111", true))
	a.ApplyBooking("2026-01-27", "14:00")

	assert.Empty(t, b.Contact())
	assert.True(t, b.Preferences().Empty())
}

func TestIdentifyIsBindOnce(t *testing.T) {
	r := NewRegistry()
	s := r.Create()

	require.NoError(t, s.Identify("+15551111111", false))
	assert.Equal(t, "+15551111111", s.Contact())
	assert.False(t, s.KnownUser())

	// Same identity repeats harmlessly and keeps the original knownUser flag.
	require.NoError(t, s.Identify("+15551111111", true))
	assert.False(t, s.KnownUser())

	assert.ErrorIs(t, s.Identify("+15552222222", false), ErrAlreadyIdentified)
	assert.Equal(t, "+15551111111", s.Contact())
}

func TestInvocationLogPreservesOrder(t *testing.T) {
	r := NewRegistry()
	s := r.Create()
	at := time.Date(2026, 1, 27, 10, 0, 0, 0, time.UTC)

	s.LogInvocation("identify_user", map[string]interface{}{"contact_number": "+15551111111"}, "success", at)
	s.LogInvocation("book_appointment", map[string]interface{}{"date": "2026-01-27"}, "conflict", at.Add(time.Minute))

	invs := s.Invocations()
	require.Len(t, invs, 2)
	assert.Equal(t, "identify_user", invs[0].Operation)
	assert.Equal(t, "book_appointment", invs[1].Operation)
	assert.Equal(t, "conflict", invs[1].Result)

	// The returned slice is a copy.
	invs[0].Operation = "mutated"
	assert.Equal(t, "identify_user", s.Invocations()[0].Operation)
}

func TestApplyBookingFoldsPreferences(t *testing.T) {
	r := NewRegistry()
	s := r.Create()

	s.ApplyBooking("2026-01-27", "09:00")
	s.ApplyBooking("2026-01-28", "14:00")

	p := s.Preferences()
	assert.Equal(t, utils.Afternoon, p.PreferredTimeOfDay)
	assert.Equal(t, []string{"Wednesday", "Tuesday"}, p.PreferredDays)
	assert.Equal(t, "2026-01-28", p.LastAppointmentDate)
}

func TestAddUsageAccumulates(t *testing.T) {
	r := NewRegistry()
	s := r.Create()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddUsage(models.UsageCounters{STTSeconds: 1, LLMInputTokens: 100})
		}()
	}
	wg.Wait()

	u := s.Usage()
	assert.Equal(t, float64(10), u.STTSeconds)
	assert.Equal(t, int64(1000), u.LLMInputTokens)
}

func TestMarkEndedRunsOnce(t *testing.T) {
	r := NewRegistry()
	s := r.Create()

	assert.False(t, s.Ended())
	assert.True(t, s.MarkEnded())
	assert.False(t, s.MarkEnded())
	assert.True(t, s.Ended())
}

func TestOperationGuardSerializes(t *testing.T) {
	r := NewRegistry()
	s := r.Create()

	var inFlight, maxInFlight int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.BeginOperation()
			defer s.EndOperation()

			mu.Lock()
			inFlight++
			if inFlight > maxInFlight {
				maxInFlight = inFlight
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inFlight--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInFlight)
}
