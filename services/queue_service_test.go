package services

import (
	"sync"
	"testing"
	"time"

	"salonqueue-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveQueueFollowsConfirmationOrder(t *testing.T) {
	f := newFixture(t)
	haircut := f.addService(t, "Haircut", 10000, 30, 5)

	first := f.confirmedEntry(t, "amy", haircut.ID)
	f.clock.Advance(time.Minute)
	second := f.confirmedEntry(t, "ben", haircut.ID)
	f.clock.Advance(time.Minute)
	third := f.confirmedEntry(t, "cleo", haircut.ID)

	active, err := f.queue.ActiveQueue()
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, second.ID, active[1].ID)
	assert.Equal(t, third.ID, active[2].ID)

	for i, entry := range []*models.QueueEntry{first, second, third} {
		position, err := f.queue.Position(entry.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, position)
	}
}

func TestEstimatedWaitIsSumOfDurationsAhead(t *testing.T) {
	f := newFixture(t)
	haircut := f.addService(t, "Haircut", 10000, 30, 5)
	coloring := f.addService(t, "Coloring", 15000, 45, 8)
	trim := f.addService(t, "Beard Trim", 5000, 20, 2)

	first := f.confirmedEntry(t, "amy", haircut.ID)
	f.clock.Advance(time.Minute)
	second := f.confirmedEntry(t, "ben", coloring.ID)
	f.clock.Advance(time.Minute)
	third := f.confirmedEntry(t, "cleo", trim.ID)

	for entry, want := range map[*models.QueueEntry]int{
		first:  0,
		second: 30,
		third:  75,
	} {
		wait, err := f.queue.EstimatedWait(entry.ID)
		require.NoError(t, err)
		assert.Equal(t, want, wait)
	}
}

func TestStartRemovesEntryFromActiveOrdering(t *testing.T) {
	f := newFixture(t)
	haircut := f.addService(t, "Haircut", 10000, 30, 5)

	first := f.confirmedEntry(t, "amy", haircut.ID)
	f.clock.Advance(time.Minute)
	second := f.confirmedEntry(t, "ben", haircut.ID)

	staff := f.addCustomer(t, "staff-dee")
	started, err := f.queue.Start(first.ID, &staff.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, started.Status)
	require.NotNil(t, started.TimeStarted)
	require.NotNil(t, started.StaffAssignedID)
	assert.Equal(t, staff.ID, *started.StaffAssignedID)

	_, err = f.queue.Position(first.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	position, err := f.queue.Position(second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, position)

	wait, err := f.queue.EstimatedWait(second.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, wait)

	events := f.dispatcher.byKind(models.EventServiceStarted)
	require.Len(t, events, 1)
	assert.Equal(t, first.CustomerID, events[0].UserID)
}

func TestCompleteNotifiesCustomerAndNextInLine(t *testing.T) {
	f := newFixture(t)
	haircut := f.addService(t, "Haircut", 10000, 30, 5)
	coloring := f.addService(t, "Coloring", 15000, 45, 8)

	first := f.confirmedEntry(t, "amy", haircut.ID, coloring.ID)
	f.clock.Advance(time.Minute)
	second := f.confirmedEntry(t, "ben", haircut.ID)

	position, err := f.queue.Position(second.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, position)
	wait, err := f.queue.EstimatedWait(second.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, wait)

	_, err = f.queue.Start(first.ID, nil)
	require.NoError(t, err)
	completed, err := f.queue.Complete(first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	require.NotNil(t, completed.TimeCompleted)

	completions := f.dispatcher.byKind(models.EventServiceCompleted)
	require.Len(t, completions, 1)
	assert.Equal(t, first.CustomerID, completions[0].UserID)
	assert.Equal(t, "Service completed! You earned 13 loyalty points.", completions[0].Message)

	nextUp := f.dispatcher.byKind(models.EventQueueNext)
	require.Len(t, nextUp, 1)
	assert.Equal(t, second.CustomerID, nextUp[0].UserID)

	position, err = f.queue.Position(second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, position)
	wait, err = f.queue.EstimatedWait(second.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, wait)
}

func TestCompleteRequiresInProgress(t *testing.T) {
	f := newFixture(t)
	haircut := f.addService(t, "Haircut", 10000, 30, 5)
	entry := f.confirmedEntry(t, "amy", haircut.ID)

	_, err := f.queue.Complete(entry.ID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestCompleteEmptiesQueueWithoutNextUpNotice(t *testing.T) {
	f := newFixture(t)
	haircut := f.addService(t, "Haircut", 10000, 30, 5)
	entry := f.confirmedEntry(t, "amy", haircut.ID)

	_, err := f.queue.Start(entry.ID, nil)
	require.NoError(t, err)
	_, err = f.queue.Complete(entry.ID)
	require.NoError(t, err)

	assert.Empty(t, f.dispatcher.byKind(models.EventQueueNext))
}

func TestCancelFromWaitingAndInProgress(t *testing.T) {
	f := newFixture(t)
	haircut := f.addService(t, "Haircut", 10000, 30, 5)

	waiting := f.confirmedEntry(t, "amy", haircut.ID)
	cancelled, err := f.queue.Cancel(waiting.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Empty(t, f.dispatcher.byKind(models.EventBookingCancelled))

	inProgress := f.confirmedEntry(t, "ben", haircut.ID)
	_, err = f.queue.Start(inProgress.ID, nil)
	require.NoError(t, err)
	cancelled, err = f.queue.Cancel(inProgress.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	notices := f.dispatcher.byKind(models.EventBookingCancelled)
	require.Len(t, notices, 1)
	assert.Equal(t, inProgress.CustomerID, notices[0].UserID)
}

func TestCancelCompletedEntryFails(t *testing.T) {
	f := newFixture(t)
	haircut := f.addService(t, "Haircut", 10000, 30, 5)
	entry := f.confirmedEntry(t, "amy", haircut.ID)

	_, err := f.queue.Start(entry.ID, nil)
	require.NoError(t, err)
	_, err = f.queue.Complete(entry.ID)
	require.NoError(t, err)

	_, err = f.queue.Cancel(entry.ID, false)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestMarkNoShow(t *testing.T) {
	f := newFixture(t)
	haircut := f.addService(t, "Haircut", 10000, 30, 5)
	entry := f.confirmedEntry(t, "amy", haircut.ID)

	marked, err := f.queue.MarkNoShow(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNoShow, marked.Status)

	_, err = f.queue.MarkNoShow(entry.ID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestConcurrentStartHasOneWinner(t *testing.T) {
	f := newFixture(t)
	haircut := f.addService(t, "Haircut", 10000, 30, 5)
	entry := f.confirmedEntry(t, "amy", haircut.ID)

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.queue.Start(entry.ID, nil)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins, losses := 0, 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		require.ErrorIs(t, err, models.ErrInvalidTransition)
		losses++
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, losses)

	assert.Len(t, f.dispatcher.byKind(models.EventServiceStarted), 1)
}

func TestUpdateEntry(t *testing.T) {
	f := newFixture(t)
	haircut := f.addService(t, "Haircut", 10000, 30, 5)
	entry := f.confirmedEntry(t, "amy", haircut.ID)
	staff := f.addCustomer(t, "staff-dee")

	notes := "prefers chair 3"
	updated, err := f.queue.UpdateEntry(entry.ID, &notes, &staff.ID)
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	require.NotNil(t, updated.StaffAssignedID)
	assert.Equal(t, staff.ID, *updated.StaffAssignedID)
	assert.Equal(t, models.StatusWaiting, updated.Status)

	// Partial update leaves the other field alone.
	updated, err = f.queue.UpdateEntry(entry.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
}

func TestExpireStaleWaiting(t *testing.T) {
	f := newFixture(t)
	haircut := f.addService(t, "Haircut", 10000, 30, 5)

	stale := f.confirmedEntry(t, "amy", haircut.ID)
	f.clock.Advance(5 * time.Hour)
	fresh := f.confirmedEntry(t, "ben", haircut.ID)

	expired, err := f.queue.ExpireStaleWaiting(4 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	staleEntry, err := f.queue.Entry(stale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusNoShow, staleEntry.Status)

	freshEntry, err := f.queue.Entry(fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, freshEntry.Status)
}

func TestEntryUnknownID(t *testing.T) {
	f := newFixture(t)

	_, err := f.queue.Entry(uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = f.queue.Start(uuid.New(), nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
