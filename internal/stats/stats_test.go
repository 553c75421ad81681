package stats

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/meltforce/liftlog/internal/models"
)

var today = time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)

func session(id, date string, items ...*models.SessionItem) *models.Session {
	if items == nil {
		items = []*models.SessionItem{}
	}
	return &models.Session{ID: id, Date: date, Items: items, Muscles: []models.Muscle{}}
}

func item(exerciseID string, sets ...models.Set) *models.SessionItem {
	if sets == nil {
		sets = []models.Set{}
	}
	return &models.SessionItem{ExerciseID: exerciseID, Sets: sets}
}

func set(weight float64, reps int) models.Set {
	return models.Set{Weight: weight, Reps: reps}
}

// TestBenchPressScenario covers the end-to-end example: three sets of bench
// press logged into a fresh session.
func TestBenchPressScenario(t *testing.T) {
	data := &models.Data{
		Exercises: []*models.Exercise{{ID: "bench", Name: "Bench Press", Muscle: models.MuscleChest}},
		Sessions: []*models.Session{
			session("s1", "2024-01-01", item("bench", set(100, 5), set(110, 5), set(105, 5))),
		},
	}

	gotFlags := PersonalBestFlags(data, data.Sessions[0], "bench")
	if diff := cmp.Diff([]bool{true, true, false}, gotFlags); diff != "" {
		t.Errorf("PB flags mismatch (-want +got):\n%s", diff)
	}

	want := []ExerciseStats{{
		ExerciseID: "bench", Name: "Bench Press", Muscle: models.MuscleChest,
		TotalSets: 3, TotalReps: 15, MaxWeight: 110,
	}}
	if diff := cmp.Diff(want, ByExercise(data)); diff != "" {
		t.Errorf("ByExercise mismatch (-want +got):\n%s", diff)
	}
}

// TestIsPersonalBestMatchesFlags verifies that checking a candidate before
// each add agrees with the flags replayed afterwards.
func TestIsPersonalBestMatchesFlags(t *testing.T) {
	sess := session("s2", "2024-01-08")
	data := &models.Data{
		Exercises: []*models.Exercise{{ID: "squat", Name: "Squat", Muscle: models.MuscleLegs}},
		Sessions: []*models.Session{
			session("s1", "2024-01-01", item("squat", set(120, 5))),
			sess,
		},
	}

	weights := []float64{100, 125, 125, 130, 90}
	var checked []bool
	for _, w := range weights {
		checked = append(checked, IsPersonalBest(data, "squat", "s2", w))
		if len(sess.Items) == 0 {
			sess.Items = append(sess.Items, item("squat"))
		}
		sess.Items[0].Sets = append(sess.Items[0].Sets, set(w, 5))
	}

	want := []bool{false, true, false, true, false}
	if diff := cmp.Diff(want, checked); diff != "" {
		t.Errorf("IsPersonalBest mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, PersonalBestFlags(data, sess, "squat")); diff != "" {
		t.Errorf("PersonalBestFlags mismatch (-want +got):\n%s", diff)
	}
}

// TestHistoricalMax verifies the excluded session is ignored and other
// exercises do not leak in.
func TestHistoricalMax(t *testing.T) {
	data := &models.Data{
		Sessions: []*models.Session{
			session("a", "2024-01-01", item("bench", set(80, 5)), item("row", set(200, 5))),
			session("b", "2024-01-02", item("bench", set(95, 3))),
		},
	}
	tests := []struct {
		exclude string
		want    float64
	}{
		{"", 95},
		{"b", 80},
		{"a", 95},
	}
	for _, tt := range tests {
		if got := HistoricalMax(data, "bench", tt.exclude); got != tt.want {
			t.Errorf("HistoricalMax(bench, exclude %q) = %v, want %v", tt.exclude, got, tt.want)
		}
	}
	if got := HistoricalMax(data, "dip", ""); got != 0 {
		t.Errorf("HistoricalMax(dip) = %v, want 0", got)
	}
}

// TestPersonalBestFlagsEmpty verifies an exercise absent from the session
// yields an empty, non-nil slice.
func TestPersonalBestFlagsEmpty(t *testing.T) {
	sess := session("s1", "2024-01-01")
	data := &models.Data{Sessions: []*models.Session{sess}}
	flags := PersonalBestFlags(data, sess, "bench")
	if flags == nil || len(flags) != 0 {
		t.Errorf("flags = %#v, want empty", flags)
	}
}

// TestByExerciseSkipsDanglingAndEmpty verifies deleted exercises and
// exercises without sets produce no rows, and rows follow catalogue order.
func TestByExerciseSkipsDanglingAndEmpty(t *testing.T) {
	data := &models.Data{
		Exercises: []*models.Exercise{
			{ID: "row", Name: "Row", Muscle: models.MuscleBack},
			{ID: "curl", Name: "Curl", Muscle: models.MuscleBiceps},
			{ID: "bench", Name: "Bench", Muscle: models.MuscleChest},
		},
		Sessions: []*models.Session{
			session("s1", "2024-01-01", item("bench", set(60, 10)), item("gone", set(500, 1)), item("curl")),
			session("s2", "2024-01-02", item("row", set(70, 8), set(75, 6))),
		},
	}

	got := ByExercise(data)
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2: %+v", len(got), got)
	}
	if got[0].ExerciseID != "row" || got[1].ExerciseID != "bench" {
		t.Errorf("order = %s, %s; want row, bench", got[0].ExerciseID, got[1].ExerciseID)
	}
	if got[0].TotalSets != 2 || got[0].TotalReps != 14 || got[0].MaxWeight != 75 {
		t.Errorf("row stats = %+v", got[0])
	}
}

// TestByMuscleResolvesCurrentMuscle verifies muscles are looked up at
// aggregation time, so re-tagging an exercise moves its history.
func TestByMuscleResolvesCurrentMuscle(t *testing.T) {
	ex := &models.Exercise{ID: "rdl", Name: "RDL", Muscle: models.MuscleLegs}
	data := &models.Data{
		Exercises: []*models.Exercise{
			ex,
			{ID: "bench", Name: "Bench", Muscle: models.MuscleChest},
		},
		Sessions: []*models.Session{
			session("s1", "2024-01-01", item("rdl", set(100, 8), set(100, 8)), item("bench", set(80, 5))),
			session("s2", "2024-01-02", item("gone", set(10, 10))),
		},
	}

	want := []MuscleStats{
		{Muscle: models.MuscleChest, TotalSets: 1, TotalReps: 5},
		{Muscle: models.MuscleLegs, TotalSets: 2, TotalReps: 16},
	}
	if diff := cmp.Diff(want, ByMuscle(data)); diff != "" {
		t.Errorf("ByMuscle mismatch (-want +got):\n%s", diff)
	}

	ex.Muscle = models.MuscleGlutes
	want[1].Muscle = models.MuscleGlutes
	if diff := cmp.Diff(want, ByMuscle(data)); diff != "" {
		t.Errorf("ByMuscle after re-tag mismatch (-want +got):\n%s", diff)
	}
}

// TestByMuscleInWindowBoundary verifies a 7-day window includes a session
// six days back and excludes one seven days back.
func TestByMuscleInWindowBoundary(t *testing.T) {
	data := &models.Data{
		Exercises: []*models.Exercise{{ID: "bench", Name: "Bench", Muscle: models.MuscleChest}},
		Sessions: []*models.Session{
			session("in-today", "2024-03-10", item("bench", set(100, 5))),
			session("in-edge", "2024-03-04", item("bench", set(50, 10))),
			session("out-edge", "2024-03-03", item("bench", set(200, 1))),
			session("future", "2024-03-11", item("bench", set(300, 1))),
		},
	}

	want := []MuscleWindowStats{{Muscle: models.MuscleChest, TotalSets: 2, TotalReps: 15, TotalTonnage: 1000}}
	if diff := cmp.Diff(want, ByMuscleInWindow(data, 7, today)); diff != "" {
		t.Errorf("ByMuscleInWindow(7) mismatch (-want +got):\n%s", diff)
	}

	one := ByMuscleInWindow(data, 1, today)
	if len(one) != 1 || one[0].TotalTonnage != 500 {
		t.Errorf("ByMuscleInWindow(1) = %+v, want only today", one)
	}

	for _, days := range []int{0, -3} {
		if got := ByMuscleInWindow(data, days, today); len(got) != 0 {
			t.Errorf("ByMuscleInWindow(%d) = %+v, want empty", days, got)
		}
	}
}

// TestISOWeek verifies year-boundary weeks follow ISO 8601 numbering.
func TestISOWeek(t *testing.T) {
	tests := []struct {
		date string
		want string
		ok   bool
	}{
		{"2024-01-01", "2024-W01", true},
		{"2023-01-01", "2022-W52", true},
		{"2020-12-31", "2020-W53", true},
		{"2021-01-03", "2020-W53", true},
		{"2024-12-30", "2025-W01", true},
		{"not-a-date", "", false},
	}
	for _, tt := range tests {
		got, ok := ISOWeek(tt.date)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ISOWeek(%q) = %q, %v; want %q, %v", tt.date, got, ok, tt.want, tt.ok)
		}
	}
}

// TestWeeklyVolume verifies bucketing by ISO week in ascending order, with
// dangling items left out.
func TestWeeklyVolume(t *testing.T) {
	data := &models.Data{
		Exercises: []*models.Exercise{{ID: "bench", Name: "Bench", Muscle: models.MuscleChest}},
		Sessions: []*models.Session{
			session("c", "2024-01-08", item("bench", set(100, 1))),
			session("a", "2024-01-01", item("bench", set(100, 5)), item("gone", set(1000, 1))),
			session("b", "2024-01-07", item("bench", set(50, 2))),
			session("d", "2023-12-31", item("bench", set(10, 1))),
		},
	}

	want := []WeekVolume{
		{Week: "2023-W52", TotalVolume: 10},
		{Week: "2024-W01", TotalVolume: 600},
		{Week: "2024-W02", TotalVolume: 100},
	}
	if diff := cmp.Diff(want, WeeklyVolume(data)); diff != "" {
		t.Errorf("WeeklyVolume mismatch (-want +got):\n%s", diff)
	}
}

// TestCompareRecentWeeks verifies the four-vs-four delta and the eight week
// minimum.
func TestCompareRecentWeeks(t *testing.T) {
	var series []WeekVolume
	for i := 1; i <= 7; i++ {
		series = append(series, WeekVolume{TotalVolume: float64(i * 100)})
	}
	if _, ok := CompareRecentWeeks(series); ok {
		t.Error("expected ok = false with 7 weeks")
	}

	series = append(series, WeekVolume{TotalVolume: 800})
	series = append([]WeekVolume{{TotalVolume: 99999}}, series...)
	delta, ok := CompareRecentWeeks(series)
	if !ok {
		t.Fatal("expected ok = true with 9 weeks")
	}
	// (500+600+700+800) - (100+200+300+400)
	if delta != 1600 {
		t.Errorf("delta = %v, want 1600", delta)
	}
}

// TestEstimatedOneRepMax verifies the Epley estimate and its zero cases.
func TestEstimatedOneRepMax(t *testing.T) {
	tests := []struct {
		weight float64
		reps   int
		want   float64
		ok     bool
	}{
		{100, 1, 103.33333333333333, true},
		{100, 10, 133.33333333333334, true},
		{60, 30, 120, true},
		{0, 5, 0, false},
		{100, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := EstimatedOneRepMax(tt.weight, tt.reps)
		if ok != tt.ok || math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EstimatedOneRepMax(%v, %d) = %v, %v; want %v, %v", tt.weight, tt.reps, got, ok, tt.want, tt.ok)
		}
	}
}

// TestSessionVolume verifies volume sums weight x reps over every set.
func TestSessionVolume(t *testing.T) {
	sess := session("s", "2024-01-01", item("a", set(100, 5), set(50, 10)), item("b", set(20, 3)), item("c"))
	if got := SessionVolume(sess); got != 1060 {
		t.Errorf("SessionVolume = %v, want 1060", got)
	}
}

// TestSummarize verifies the headline numbers.
func TestSummarize(t *testing.T) {
	s1 := session("s1", "2024-01-01", item("bench", set(100, 5), set(120, 1)))
	s1.Done = true
	data := &models.Data{
		Exercises: []*models.Exercise{{ID: "bench", Name: "Bench", Muscle: models.MuscleChest}},
		Sessions: []*models.Session{
			s1,
			session("s2", "2024-01-02", item("bench", set(0, 20)), item("gone", set(400, 10))),
			session("s3", "2024-01-03"),
		},
	}

	got := Summarize(data)
	want := Summary{
		TotalVolume:      620,
		Sessions:         3,
		FinishedSessions: 1,
		TotalSets:        3,
		BestSet:          500,
		BestOneRepMax:    120 * (1 + 1.0/30),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize mismatch (-want +got):\n%s", diff)
	}
}

// TestDailyVolume verifies one point per date in ascending order.
func TestDailyVolume(t *testing.T) {
	data := &models.Data{
		Exercises: []*models.Exercise{{ID: "bench", Name: "Bench", Muscle: models.MuscleChest}},
		Sessions: []*models.Session{
			session("b", "2024-01-02", item("bench", set(10, 10))),
			session("a", "2024-01-01", item("bench", set(100, 5))),
			session("c", "2024-01-02", item("bench", set(5, 4))),
		},
	}
	want := []DayVolume{
		{Date: "2024-01-01", TotalVolume: 500},
		{Date: "2024-01-02", TotalVolume: 120},
	}
	if diff := cmp.Diff(want, DailyVolume(data)); diff != "" {
		t.Errorf("DailyVolume mismatch (-want +got):\n%s", diff)
	}
}

// TestCheckPersonalBest verifies the all-sessions comparison and the
// placeholder name for deleted exercises.
func TestCheckPersonalBest(t *testing.T) {
	data := &models.Data{
		Exercises: []*models.Exercise{{ID: "dl", Name: "Deadlift", Muscle: models.MuscleBack}},
		Sessions: []*models.Session{
			session("a", "2024-01-01", item("dl", set(180, 3))),
			session("b", "2024-01-08", item("dl", set(190, 1))),
		},
	}

	got := CheckPersonalBest(data, "dl", 190)
	want := PersonalBestCheck{ExerciseID: "dl", Name: "Deadlift", HistoricalMax: 190, Candidate: 190}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CheckPersonalBest(190) mismatch (-want +got):\n%s", diff)
	}
	if !CheckPersonalBest(data, "dl", 192.5).PersonalBest {
		t.Error("192.5 should be a personal best")
	}
	if name := CheckPersonalBest(data, "gone", 1).Name; name != models.DeletedExerciseName {
		t.Errorf("name = %q, want %q", name, models.DeletedExerciseName)
	}
}

// TestWeeklyReport verifies the delta is only set with eight weeks.
func TestWeeklyReport(t *testing.T) {
	data := &models.Data{
		Exercises: []*models.Exercise{{ID: "b", Name: "Bench", Muscle: models.MuscleChest}},
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		date := start.AddDate(0, 0, 7*i).Format(models.DateLayout)
		data.Sessions = append(data.Sessions, session(date, date, item("b", set(float64(10*(i+1)), 1))))
	}

	report := Weekly(data)
	if len(report.Weeks) != 8 {
		t.Fatalf("weeks = %d, want 8", len(report.Weeks))
	}
	if report.RecentDelta == nil || *report.RecentDelta != 160 {
		t.Errorf("recent delta = %v, want 160", report.RecentDelta)
	}

	data.Sessions = data.Sessions[:7]
	if report := Weekly(data); report.RecentDelta != nil {
		t.Errorf("recent delta with 7 weeks = %v, want nil", *report.RecentDelta)
	}
}
