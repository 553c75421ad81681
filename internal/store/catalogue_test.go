package store

import (
	"errors"
	"testing"

	"github.com/meltforce/liftlog/internal/models"
)

// TestAddExercise verifies names are trimmed, muscles canonicalized and an
// empty name rejected.
func TestAddExercise(t *testing.T) {
	st := newTestStore(newMemSlot())

	ex, err := st.AddExercise("  Pull-up ", "lats")
	if err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	if ex.Name != "Pull-up" || ex.Muscle != models.MuscleBack || ex.ID == "" {
		t.Errorf("got %+v", ex)
	}

	if _, err := st.AddExercise("   ", models.MuscleChest); !errors.Is(err, ErrNameRequired) {
		t.Errorf("err = %v, want ErrNameRequired", err)
	}
	if len(st.Data().Exercises) != 1 {
		t.Errorf("exercises = %d, want 1", len(st.Data().Exercises))
	}
}

// TestDeleteExerciseKeepsHistory verifies deleting an exercise leaves its
// logged sets in place and the reference resolves to the placeholder.
func TestDeleteExerciseKeepsHistory(t *testing.T) {
	st := newTestStore(newMemSlot())
	ex, _ := st.AddExercise("Bench", models.MuscleChest)
	sess := st.NewSession("2024-01-01")
	mustAddSet(t, st, sess, ex.ID, 100, 5)

	if !st.DeleteExercise(ex.ID) {
		t.Fatal("DeleteExercise returned false")
	}
	if st.DeleteExercise(ex.ID) {
		t.Error("second DeleteExercise returned true")
	}
	if len(sess.Items) != 1 || len(sess.Items[0].Sets) != 1 {
		t.Fatalf("session items changed: %+v", sess.Items)
	}

	got := st.ResolveExercise(ex.ID)
	if got.Name != models.DeletedExerciseName || got.Muscle != models.MuscleOther || got.ID != ex.ID {
		t.Errorf("ResolveExercise = %+v, want deleted placeholder", got)
	}
}

// TestSeedCatalogueSkipsExisting verifies seeding adds only names not
// already present, compared case-insensitively.
func TestSeedCatalogueSkipsExisting(t *testing.T) {
	st := newTestStore(newMemSlot())
	st.AddExercise("bench press", models.MuscleChest)

	entries := []models.CatalogueEntry{
		{Name: "Bench Press", Muscle: models.MuscleChest},
		{Name: "Squat", Muscle: models.MuscleLegs},
		{Name: "SQUAT", Muscle: models.MuscleLegs},
		{Name: "", Muscle: models.MuscleOther},
	}
	if got := st.SeedCatalogue(entries); got != 1 {
		t.Errorf("SeedCatalogue = %d, want 1", got)
	}
	if got := st.SeedCatalogue(models.DefaultCatalogue); got != len(models.DefaultCatalogue)-1 {
		t.Errorf("second seed = %d, want %d", got, len(models.DefaultCatalogue)-1)
	}
	if got := st.SeedCatalogue(models.DefaultCatalogue); got != 0 {
		t.Errorf("third seed = %d, want 0", got)
	}
}

// TestFindExerciseByName verifies case-insensitive lookup.
func TestFindExerciseByName(t *testing.T) {
	st := newTestStore(newMemSlot())
	ex, _ := st.AddExercise("Deadlift", models.MuscleBack)
	if got := st.FindExerciseByName(" deadLIFT "); got != ex {
		t.Errorf("FindExerciseByName = %v, want %v", got, ex)
	}
	if got := st.FindExerciseByName("Row"); got != nil {
		t.Errorf("FindExerciseByName(Row) = %v, want nil", got)
	}
}

// TestInsertExerciseKeepsFreeID verifies a supplied id is kept unless it
// collides with an existing exercise.
func TestInsertExerciseKeepsFreeID(t *testing.T) {
	st := newTestStore(newMemSlot())
	first, err := st.InsertExercise(models.Exercise{ID: "abc", Name: "Row", Muscle: "back"})
	if err != nil {
		t.Fatalf("InsertExercise: %v", err)
	}
	if first.ID != "abc" || first.Muscle != models.MuscleBack {
		t.Errorf("got %+v, want id abc, muscle Back", first)
	}

	second, err := st.InsertExercise(models.Exercise{ID: "abc", Name: "Other Row"})
	if err != nil {
		t.Fatalf("InsertExercise: %v", err)
	}
	if second.ID == "abc" || second.ID == "" {
		t.Errorf("colliding id kept: %q", second.ID)
	}
	if second.Muscle != models.MuscleOther {
		t.Errorf("muscle = %q, want Other", second.Muscle)
	}
}

// TestExercisesForSession verifies the muscle filter narrows the choices
// and an empty filter offers everything.
func TestExercisesForSession(t *testing.T) {
	st := newTestStore(newMemSlot())
	bench, _ := st.AddExercise("Bench", models.MuscleChest)
	st.AddExercise("Squat", models.MuscleLegs)
	fly, _ := st.AddExercise("Fly", models.MuscleChest)
	sess := st.NewSession("2024-01-01")

	if got := st.ExercisesForSession(sess); len(got) != 3 {
		t.Errorf("unfiltered = %d exercises, want 3", len(got))
	}

	st.SetMuscleFilter(sess, []string{"chest"})
	got := st.ExercisesForSession(sess)
	if len(got) != 2 || got[0] != bench || got[1] != fly {
		t.Errorf("chest filter = %v, want bench, fly", got)
	}
}
