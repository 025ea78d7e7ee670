package service

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"brandlink-be/internal/dto"
	"brandlink-be/internal/pkg/apperror"
	"brandlink-be/internal/pkg/lock"
	"brandlink-be/pkg/dedupe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDuplicateService_FindDuplicatesOrdersBySize(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	wsId := env.newWorkspace(t, uuid.New())

	env.newContact(t, wsId, dto.ContactFields{Email: str("pair@x.co")})
	env.newContact(t, wsId, dto.ContactFields{Email: str("pair@x.co")})
	for i := 0; i < 3; i++ {
		env.newContact(t, wsId, dto.ContactFields{Name: str("Sam Reed"), Company: str("Acme")})
	}
	env.newContact(t, wsId, dto.ContactFields{Name: str("Lonely")})

	groups, err := env.duplicates.FindDuplicates(ctx, wsId)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "sam reed|acme", groups[0].Key)
	assert.Equal(t, 3, groups[0].Count)
	assert.Len(t, groups[0].Contacts, 3)
	assert.Equal(t, "pair@x.co", groups[1].Key)

	res, err := env.duplicates.ScanWorkspace(ctx, wsId)
	require.NoError(t, err)
	assert.Equal(t, 2, res.GroupCount)
	assert.Equal(t, 5, res.ContactCount)
}

func TestDuplicateService_Merge(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	actor := uuid.New()
	wsId := env.newWorkspace(t, actor)

	keep := env.newContact(t, wsId, dto.ContactFields{
		Email: str("jo@brand.co"),
		Name:  str("Jo"),
		Tags:  []string{"a"},
	})
	dup := env.newContact(t, wsId, dto.ContactFields{
		Email: str("JO@brand.co"),
		Phone: str("555-0101"),
		Tags:  []string{"b", "a"},
		Notes: str("met at expo"),
	})

	// warm the cache so we can see the merge drop it
	_, err := env.duplicates.FindDuplicates(ctx, wsId)
	require.NoError(t, err)

	res, err := env.duplicates.Merge(ctx, wsId, actor, &dto.MergeContactsRequest{KeepId: keep, ContactIds: []uuid.UUID{keep, dup}})
	require.NoError(t, err)
	assert.Equal(t, keep, res.Contact.Id)
	assert.Equal(t, []uuid.UUID{dup}, res.RemovedIds)

	stored, err := env.contacts.Show(ctx, wsId, keep)
	require.NoError(t, err)
	assert.Equal(t, "jo@brand.co", *stored.Email)
	assert.Equal(t, "555-0101", *stored.Phone)
	assert.Equal(t, []string{"a", "b"}, stored.Tags)
	require.NotNil(t, stored.Notes)
	assert.Equal(t, "met at expo"+dedupe.NotesMergeSeparator+dedupe.NotesMergeProvenancePrefix+dup.String(), *stored.Notes)

	_, err = env.contacts.Show(ctx, wsId, dup)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, cached := env.cache.Get(wsId)
	assert.False(t, cached)

	require.Len(t, env.events.merged, 1)
	assert.Equal(t, mergedEvent{WorkspaceId: wsId, ActorId: actor, KeptId: keep, RemovedIds: []uuid.UUID{dup}}, env.events.merged[0])

	groups, err := env.duplicates.FindDuplicates(ctx, wsId)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestDuplicateService_MergeFailures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	wsId := env.newWorkspace(t, uuid.New())
	otherWs := env.newWorkspace(t, uuid.New())

	a := env.newContact(t, wsId, dto.ContactFields{Name: str("A")})
	b := env.newContact(t, wsId, dto.ContactFields{Name: str("A")})
	foreign := env.newContact(t, otherWs, dto.ContactFields{Name: str("A")})

	tests := []struct {
		name string
		req  dto.MergeContactsRequest
		want error
	}{
		{"unknown id", dto.MergeContactsRequest{KeepId: a, ContactIds: []uuid.UUID{a, uuid.New()}}, apperror.ErrNotFound},
		{"other workspace", dto.MergeContactsRequest{KeepId: a, ContactIds: []uuid.UUID{a, foreign}}, apperror.ErrNotFound},
		{"keep not in set", dto.MergeContactsRequest{KeepId: uuid.New(), ContactIds: []uuid.UUID{a, b}}, apperror.ErrNotFound},
		{"single distinct id", dto.MergeContactsRequest{KeepId: a, ContactIds: []uuid.UUID{a, a}}, apperror.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.duplicates.Merge(ctx, wsId, uuid.New(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// nothing was touched
	list, err := env.contacts.GetAll(ctx, wsId, nil)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Empty(t, env.events.merged)
}

func TestDuplicateService_MergeWhileLocked(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	wsId := env.newWorkspace(t, uuid.New())
	a := env.newContact(t, wsId, dto.ContactFields{Name: str("A")})
	b := env.newContact(t, wsId, dto.ContactFields{Name: str("A")})

	unlock, err := env.locker.Acquire(ctx, lock.MergeKey(wsId), time.Minute)
	require.NoError(t, err)

	_, err = env.duplicates.Merge(ctx, wsId, uuid.New(), &dto.MergeContactsRequest{KeepId: a, ContactIds: []uuid.UUID{a, b}})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	require.NoError(t, unlock(ctx))
	_, err = env.duplicates.Merge(ctx, wsId, uuid.New(), &dto.MergeContactsRequest{KeepId: a, ContactIds: []uuid.UUID{a, b}})
	assert.NoError(t, err)

	// the service released its own lock
	_, err = env.locker.Acquire(ctx, lock.MergeKey(wsId), time.Minute)
	assert.NoError(t, err)
}

func TestDuplicateService_PreviewDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	wsId := env.newWorkspace(t, uuid.New())
	a := env.newContact(t, wsId, dto.ContactFields{Name: str("A"), Notes: str("first")})
	b := env.newContact(t, wsId, dto.ContactFields{Name: str("A"), Notes: str("second")})

	res, err := env.duplicates.PreviewMerge(ctx, wsId, &dto.MergeContactsRequest{KeepId: a, ContactIds: []uuid.UUID{a, b}})
	require.NoError(t, err)
	require.NotNil(t, res.Contact.Notes)
	assert.True(t, strings.HasPrefix(*res.Contact.Notes, "first"+dedupe.NotesMergeSeparator+"second"))
	assert.Equal(t, []uuid.UUID{b}, res.RemovedIds)

	stored, err := env.contacts.Show(ctx, wsId, a)
	require.NoError(t, err)
	assert.Equal(t, "first", *stored.Notes)
	_, err = env.contacts.Show(ctx, wsId, b)
	assert.NoError(t, err)
	assert.Empty(t, env.events.merged)
}

// onFirstContactQuery runs fn once, right after the first read of the contacts table.
func (env *testEnv) onFirstContactQuery(t *testing.T, fn func()) {
	t.Helper()
	var fired atomic.Bool
	err := env.db.Callback().Query().After("gorm:query").Register("test:after_contact_query", func(tx *gorm.DB) {
		if tx.Statement.Table != "contacts" || !fired.CompareAndSwap(false, true) {
			return
		}
		fn()
	})
	require.NoError(t, err)
}

func TestDuplicateService_MergeDoesNotLoseConcurrentEdit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	actor := uuid.New()
	wsId := env.newWorkspace(t, actor)

	keep := env.newContact(t, wsId, dto.ContactFields{Email: str("jo@brand.co")})
	dup := env.newContact(t, wsId, dto.ContactFields{Email: str("jo@brand.co"), Phone: str("555-0101")})

	// an edit to the keep contact arrives just after the merge has read it
	edited := make(chan error, 1)
	env.onFirstContactQuery(t, func() {
		go func() {
			_, err := env.contacts.Update(ctx, wsId, &dto.UpdateContactRequest{
				Id:            keep,
				ContactFields: dto.ContactFields{Email: str("jo@brand.co"), Title: str("Head of Partnerships")},
			})
			edited <- err
		}()
	})

	_, err := env.duplicates.Merge(ctx, wsId, actor, &dto.MergeContactsRequest{KeepId: keep, ContactIds: []uuid.UUID{keep, dup}})
	require.NoError(t, err)

	select {
	case err := <-edited:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("edit never completed")
	}

	stored, err := env.contacts.Show(ctx, wsId, keep)
	require.NoError(t, err)
	require.NotNil(t, stored.Title)
	assert.Equal(t, "Head of Partnerships", *stored.Title)

	_, err = env.contacts.Show(ctx, wsId, dup)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDuplicateService_ScanOverlappingMergeIsNotCached(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	actor := uuid.New()
	wsId := env.newWorkspace(t, actor)

	keep := env.newContact(t, wsId, dto.ContactFields{Email: str("jo@brand.co")})
	dup := env.newContact(t, wsId, dto.ContactFields{Email: str("jo@brand.co")})

	// the merge commits after the scan has loaded contacts but before it caches
	var mergeErr error
	env.onFirstContactQuery(t, func() {
		_, mergeErr = env.duplicates.Merge(ctx, wsId, actor, &dto.MergeContactsRequest{KeepId: keep, ContactIds: []uuid.UUID{keep, dup}})
	})

	_, err := env.duplicates.FindDuplicates(ctx, wsId)
	require.NoError(t, err)
	require.NoError(t, mergeErr)

	groups, err := env.duplicates.FindDuplicates(ctx, wsId)
	require.NoError(t, err)
	assert.Empty(t, groups)
}
