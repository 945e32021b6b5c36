package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prepmitra/mocktest-backend/internal/model"
	"github.com/prepmitra/mocktest-backend/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Fakes ──────────────────────────────────────────────────────────────

type fakeTestStore struct {
	existingKeys map[string]bool
	createErr    error
	created      []*model.Test
	createdQs    [][]model.Question
	listed       []model.Test
	listCalls    int
	deleteFound  bool
	deletedIDs   []uuid.UUID
}

func storeKey(date time.Time, tt model.TestType, ph model.Phase) string {
	return fmt.Sprintf("%s|%s|%s", date.Format("2006-01-02"), tt, ph)
}

func (f *fakeTestStore) ExistsByKey(_ context.Context, date time.Time, tt model.TestType, ph model.Phase) (bool, error) {
	return f.existingKeys[storeKey(date, tt, ph)], nil
}

func (f *fakeTestStore) CreateWithQuestions(_ context.Context, t *model.Test, qs []model.Question) error {
	if f.createErr != nil {
		return f.createErr
	}
	t.ID = uuid.New()
	for i := range qs {
		qs[i].ID = uuid.New()
		qs[i].TestID = t.ID
	}
	f.created = append(f.created, t)
	f.createdQs = append(f.createdQs, qs)
	return nil
}

func (f *fakeTestStore) List(_ context.Context) ([]model.Test, error) {
	f.listCalls++
	return f.listed, nil
}

func (f *fakeTestStore) DeleteCascade(_ context.Context, id uuid.UUID) (bool, error) {
	if !f.deleteFound {
		return false, nil
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return true, nil
}

type fakeQuestionStore struct {
	found   bool
	byTest  map[uuid.UUID][]model.Question
	deleted []uuid.UUID
}

func (f *fakeQuestionStore) ListByTest(_ context.Context, testID uuid.UUID) ([]model.Question, error) {
	return f.byTest[testID], nil
}

func (f *fakeQuestionStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if !f.found {
		return false, nil
	}
	f.deleted = append(f.deleted, id)
	return true, nil
}

type fakeCatalogCache struct {
	warm         []model.TestSummary
	sets         int
	invalidation int
}

func (f *fakeCatalogCache) Get(_ context.Context) ([]model.TestSummary, bool) {
	return f.warm, f.warm != nil
}

func (f *fakeCatalogCache) Set(_ context.Context, s []model.TestSummary) { f.sets++ }

func (f *fakeCatalogCache) Invalidate(_ context.Context) { f.invalidation++ }

// ─── Helpers ────────────────────────────────────────────────────────────

func newService(store *fakeTestStore, qstore *fakeQuestionStore, cache *fakeCatalogCache) *TestService {
	return NewTestService(store, qstore, cache, zerolog.Nop())
}

func makeQuestions(n int) []model.QuestionInput {
	qs := make([]model.QuestionInput, n)
	for i := range qs {
		qs[i] = model.QuestionInput{
			QuestionStatement: fmt.Sprintf("Question %d?", i+1),
			Option1:           "A",
			Option2:           "B",
			Option3:           "C",
			Option4:           "D",
			CorrectOption:     "option2",
		}
	}
	return qs
}

func makeRequest(n int) *model.CreateTestRequest {
	return &model.CreateTestRequest{
		Title:     "Prelims Mock",
		Date:      "2026-02-10",
		TestType:  "paid",
		Questions: makeQuestions(n),
	}
}

// ─── Creation pipeline ──────────────────────────────────────────────────

func TestCreatePhaseInference(t *testing.T) {
	tests := []struct {
		count         int
		wantPhase     model.Phase
		wantQType     model.QuestionPhase
	}{
		{75, model.PhaseDaily, model.QuestionPhaseGS},
		{100, model.PhaseGS, model.QuestionPhaseGS},
		{80, model.PhaseCSAT, model.QuestionPhaseCSAT},
	}

	for _, tc := range tests {
		t.Run(string(tc.wantPhase), func(t *testing.T) {
			store := &fakeTestStore{}
			svc := newService(store, &fakeQuestionStore{}, &fakeCatalogCache{})

			summary, err := svc.Create(context.Background(), makeRequest(tc.count))
			require.NoError(t, err)

			assert.Equal(t, tc.wantPhase, summary.Phase)
			assert.Equal(t, tc.count, summary.TotalQuestions)

			require.Len(t, store.createdQs, 1)
			for _, q := range store.createdQs[0] {
				assert.Equal(t, tc.wantQType, q.Phase)
			}
		})
	}
}

func TestCreateRejectsInvalidQuestionCounts(t *testing.T) {
	for _, count := range []int{0, 1, 50, 74, 76, 99, 101, 150} {
		t.Run(fmt.Sprintf("count_%d", count), func(t *testing.T) {
			store := &fakeTestStore{}
			svc := newService(store, &fakeQuestionStore{}, &fakeCatalogCache{})

			_, err := svc.Create(context.Background(), makeRequest(count))
			require.ErrorIs(t, err, ErrInvalidQuestionCount)

			// The message enumerates the acceptable counts.
			assert.Contains(t, err.Error(), "75")
			assert.Contains(t, err.Error(), "100")
			assert.Contains(t, err.Error(), "80")

			// Nothing may be persisted on rejection.
			assert.Empty(t, store.created)
		})
	}
}

func TestCreateDateNormalizationIdempotent(t *testing.T) {
	store := &fakeTestStore{}
	svc := newService(store, &fakeQuestionStore{}, &fakeCatalogCache{})

	first, err := svc.Create(context.Background(), makeRequest(75))
	require.NoError(t, err)

	req := makeRequest(75)
	req.Date = "2026-02-10T00:00:00Z"
	req.TestType = "free" // different key, same date
	second, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "2026-02-10", first.Date)
	assert.Equal(t, first.Date, second.Date)
}

func TestCreateDateValidation(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr error
	}{
		{"missing", "", ErrDateRequired},
		{"slashes", "2026/02/10", ErrInvalidDateFormat},
		{"impossible day", "2026-02-30", ErrInvalidDate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newService(&fakeTestStore{}, &fakeQuestionStore{}, &fakeCatalogCache{})
			req := makeRequest(75)
			req.Date = tc.date
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateTitleValidation(t *testing.T) {
	svc := newService(&fakeTestStore{}, &fakeQuestionStore{}, &fakeCatalogCache{})

	req := makeRequest(75)
	req.Title = "   "
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrTitleRequired)

	req = makeRequest(75)
	for len(req.Title) <= 200 {
		req.Title += "xxxxxxxxxx"
	}
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrTitleTooLong)
}

func TestCreateTestTypeValidation(t *testing.T) {
	svc := newService(&fakeTestStore{}, &fakeQuestionStore{}, &fakeCatalogCache{})

	req := makeRequest(75)
	req.TestType = "premium"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTestType)
}

func TestCreateDefaultWindow(t *testing.T) {
	store := &fakeTestStore{}
	svc := newService(store, &fakeQuestionStore{}, &fakeCatalogCache{})

	summary, err := svc.Create(context.Background(), makeRequest(75))
	require.NoError(t, err)

	assert.Equal(t, "2026-02-10T00:00:00+05:30", summary.StartTimeIST)
	assert.Equal(t, "2026-02-10T23:59:59+05:30", summary.EndTimeIST)

	// Stored as true UTC instants.
	created := store.created[0]
	assert.Equal(t, time.Date(2026, 2, 9, 18, 30, 0, 0, time.UTC), created.StartUTC)
	assert.Equal(t, time.Date(2026, 2, 10, 18, 29, 59, 0, time.UTC), created.EndUTC)
}

func TestCreateSuppliedTimesShiftedToUTC(t *testing.T) {
	store := &fakeTestStore{}
	svc := newService(store, &fakeQuestionStore{}, &fakeCatalogCache{})

	req := makeRequest(75)
	req.StartTime = "2026-02-10T09:00:00Z"
	req.EndTime = "2026-02-10T11:00:00Z"

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	created := store.created[0]
	assert.Equal(t, time.Date(2026, 2, 10, 3, 30, 0, 0, time.UTC), created.StartUTC)
	assert.Equal(t, time.Date(2026, 2, 10, 5, 30, 0, 0, time.UTC), created.EndUTC)
}

func TestCreateRejectsInvertedWindow(t *testing.T) {
	svc := newService(&fakeTestStore{}, &fakeQuestionStore{}, &fakeCatalogCache{})

	req := makeRequest(75)
	req.StartTime = "2026-02-10T11:00:00"
	req.EndTime = "2026-02-10T09:00:00"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	// Equal instants are also rejected: the window must be non-empty.
	req.EndTime = req.StartTime
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCreateDuplicateDetection(t *testing.T) {
	date, _ := time.ParseInLocation("2006-01-02", "2026-02-10", time.FixedZone("IST", 19800))
	store := &fakeTestStore{existingKeys: map[string]bool{
		storeKey(date, model.TestTypePaid, model.PhaseDaily): true,
	}}
	svc := newService(store, &fakeQuestionStore{}, &fakeCatalogCache{})

	_, err := svc.Create(context.Background(), makeRequest(75))
	assert.ErrorIs(t, err, ErrDuplicateTest)

	// Same date with a different type passes the existence check.
	req := makeRequest(75)
	req.TestType = "free"
	_, err = svc.Create(context.Background(), req)
	assert.NoError(t, err)

	// Same date and type but a different inferred phase also passes.
	req = makeRequest(100)
	_, err = svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateMapsLostUniquenessRace(t *testing.T) {
	// Both concurrent creates can pass the pre-check; the storage-level
	// unique index reports the loser, which must still surface as a
	// duplicate conflict.
	store := &fakeTestStore{createErr: repository.ErrUniqueViolation}
	svc := newService(store, &fakeQuestionStore{}, &fakeCatalogCache{})

	_, err := svc.Create(context.Background(), makeRequest(75))
	assert.ErrorIs(t, err, ErrDuplicateTest)
}

func TestCreateQuestionNumberFallback(t *testing.T) {
	store := &fakeTestStore{}
	svc := newService(store, &fakeQuestionStore{}, &fakeCatalogCache{})

	_, err := svc.Create(context.Background(), makeRequest(75))
	require.NoError(t, err)

	require.Len(t, store.createdQs, 1)
	for i, q := range store.createdQs[0] {
		assert.Equal(t, i+1, q.QuestionNumber)
	}
}

func TestCreateExplicitQuestionNumbersKept(t *testing.T) {
	store := &fakeTestStore{}
	svc := newService(store, &fakeQuestionStore{}, &fakeCatalogCache{})

	req := makeRequest(75)
	req.Questions[0].QuestionNumber = 42

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 42, store.createdQs[0][0].QuestionNumber)
	assert.Equal(t, 2, store.createdQs[0][1].QuestionNumber)
}

func TestCreateTrimsFields(t *testing.T) {
	store := &fakeTestStore{}
	svc := newService(store, &fakeQuestionStore{}, &fakeCatalogCache{})

	req := makeRequest(75)
	req.Title = "  Prelims Mock  "
	req.Questions[0].QuestionStatement = "  What is the capital?  "
	req.Questions[0].Option1 = "  Delhi  "

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Prelims Mock", store.created[0].Title)
	assert.Equal(t, "What is the capital?", store.createdQs[0][0].QuestionStatement)
	assert.Equal(t, "Delhi", store.createdQs[0][0].Option1)
}

func TestCreateRejectsBadQuestionEntries(t *testing.T) {
	svc := newService(&fakeTestStore{}, &fakeQuestionStore{}, &fakeCatalogCache{})

	req := makeRequest(75)
	req.Questions[3].QuestionStatement = "   "
	_, err := svc.Create(context.Background(), req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "questions[3]")

	req = makeRequest(75)
	req.Questions[5].CorrectOption = "option9"
	_, err = svc.Create(context.Background(), req)
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "questions[5]")
}

// correctOption may name an option slot whose trimmed text is empty; this
// lenience is deliberate and must not be tightened silently.
func TestCreateAllowsEmptyReferencedOption(t *testing.T) {
	svc := newService(&fakeTestStore{}, &fakeQuestionStore{}, &fakeCatalogCache{})

	req := makeRequest(75)
	req.Questions[0].Option2 = "  "
	req.Questions[0].CorrectOption = "option2"

	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateInvalidatesCatalogCache(t *testing.T) {
	cache := &fakeCatalogCache{}
	svc := newService(&fakeTestStore{}, &fakeQuestionStore{}, cache)

	_, err := svc.Create(context.Background(), makeRequest(75))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidation)
}

// ─── Listing ────────────────────────────────────────────────────────────

func TestListServedFromWarmCache(t *testing.T) {
	store := &fakeTestStore{}
	cache := &fakeCatalogCache{warm: []model.TestSummary{{Title: "cached"}}}
	svc := newService(store, &fakeQuestionStore{}, cache)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached", got[0].Title)
	assert.Zero(t, store.listCalls)
}

func TestListMissReadsStoreAndWarmsCache(t *testing.T) {
	start := time.Date(2026, 2, 9, 18, 30, 0, 0, time.UTC)
	store := &fakeTestStore{listed: []model.Test{{
		ID:             uuid.New(),
		Title:          "Prelims Mock",
		TestDate:       time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		StartUTC:       start,
		EndUTC:         start.Add(2 * time.Hour),
		TotalQuestions: 100,
		TestType:       model.TestTypePaid,
		Phase:          model.PhaseGS,
	}}}
	cache := &fakeCatalogCache{}
	svc := newService(store, &fakeQuestionStore{}, cache)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, 1, store.listCalls)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, "2026-02-10", got[0].Date)
	assert.Equal(t, "General Studies", got[0].PhaseLabel)
	assert.Equal(t, "2026-02-10T00:00:00+05:30", got[0].StartTimeIST)
}

// ─── Deletion ───────────────────────────────────────────────────────────

func TestDeleteTest(t *testing.T) {
	store := &fakeTestStore{deleteFound: true}
	cache := &fakeCatalogCache{}
	svc := newService(store, &fakeQuestionStore{}, cache)

	id := uuid.New()
	require.NoError(t, svc.DeleteTest(context.Background(), id))
	assert.Equal(t, []uuid.UUID{id}, store.deletedIDs)
	assert.Equal(t, 1, cache.invalidation)
}

func TestDeleteTestNotFound(t *testing.T) {
	svc := newService(&fakeTestStore{}, &fakeQuestionStore{}, &fakeCatalogCache{})
	err := svc.DeleteTest(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTestNotFound)
}

func TestDeleteQuestion(t *testing.T) {
	qstore := &fakeQuestionStore{found: true}
	cache := &fakeCatalogCache{}
	svc := newService(&fakeTestStore{}, qstore, cache)

	id := uuid.New()
	require.NoError(t, svc.DeleteQuestion(context.Background(), id))
	assert.Equal(t, []uuid.UUID{id}, qstore.deleted)
	assert.Equal(t, 1, cache.invalidation)
}

func TestDeleteQuestionNotFound(t *testing.T) {
	svc := newService(&fakeTestStore{}, &fakeQuestionStore{}, &fakeCatalogCache{})
	err := svc.DeleteQuestion(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
