package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func completeAnswers() AnswerSet {
	return AnswerSet{
		DogsImportance:      2,
		DogIntroduction:     ptr(DogIntroSlow),
		CatsImportance:      4,
		CatBehavior:         ptr(CatBehaviorCalm),
		KidsImportance:      2,
		KidsBehavior:        ptr(KidsBehaviorGentle),
		StrangersImportance: 3,
		StrangersBehavior:   ptr(StrangersShy),
	}
}

func TestNewAnswerSet_Defaults(t *testing.T) {
	a := NewAnswerSet()

	assert.Equal(t, 2, a.DogsImportance)
	assert.Equal(t, 2, a.CatsImportance)
	assert.Equal(t, 2, a.KidsImportance)
	assert.Equal(t, 2, a.StrangersImportance)
	assert.Nil(t, a.DogIntroduction)
	assert.Nil(t, a.CatBehavior)
	assert.Nil(t, a.KidsBehavior)
	assert.Nil(t, a.StrangersBehavior)

	assert.False(t, a.IsComplete())
	assert.Equal(t, 4, a.AnsweredCount())

	field, missing := a.FirstUnanswered()
	assert.True(t, missing)
	assert.Equal(t, FieldDogIntroduction, field)
}

func TestAnswerSet_FirstUnansweredOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AnswerSet)
		want    AnswerField
		missing bool
	}{
		{
			name:    "dog introduction missing",
			mutate:  func(a *AnswerSet) { a.DogIntroduction = nil },
			want:    FieldDogIntroduction,
			missing: true,
		},
		{
			name:    "cat and strangers missing",
			mutate:  func(a *AnswerSet) { a.CatBehavior = nil; a.StrangersBehavior = nil },
			want:    FieldCatBehavior,
			missing: true,
		},
		{
			name:    "only strangers missing",
			mutate:  func(a *AnswerSet) { a.StrangersBehavior = nil },
			want:    FieldStrangersBehavior,
			missing: true,
		},
		{
			name:   "complete",
			mutate: func(a *AnswerSet) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := completeAnswers()
			tt.mutate(&a)

			field, missing := a.FirstUnanswered()
			assert.Equal(t, tt.missing, missing)
			assert.Equal(t, tt.want, field)
			assert.Equal(t, !tt.missing, a.IsComplete())
		})
	}
}

func TestAnswerSet_CompleteScenario(t *testing.T) {
	a := completeAnswers()

	assert.True(t, a.IsComplete())

	progress := NewProgress(a.AnsweredCount())
	assert.Equal(t, Progress{Completed: 8, Total: 8, Percentage: 100}, progress)
	assert.Equal(t, "8/8", progress.String())

	body, err := json.Marshal(NewSubmissionPayload(a))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"dogs": "slow",
		"cats": "calm",
		"kids": "gentle",
		"energy": 3,
		"affection": 3,
		"training": 3,
		"meta": {"dogsImportance": 2, "catsImportance": 4, "kidsImportance": 2, "strangersImportance": 3}
	}`, string(body))
}

func TestSubmissionPayload_OmitsStrangersBehavior(t *testing.T) {
	body, err := json.Marshal(NewSubmissionPayload(completeAnswers()))
	require.NoError(t, err)

	assert.NotContains(t, string(body), "strangersBehavior")
	assert.NotContains(t, string(body), "shy")
}

func TestNewProgress_Rounding(t *testing.T) {
	assert.Equal(t, 50, NewProgress(4).Percentage)
	assert.Equal(t, 63, NewProgress(5).Percentage)
	assert.Equal(t, 75, NewProgress(6).Percentage)
	assert.Equal(t, 88, NewProgress(7).Percentage)
	assert.Equal(t, "5/8", NewProgress(5).String())
}

func TestAnswerSet_CloneDoesNotShare(t *testing.T) {
	a := completeAnswers()
	b := a.Clone()

	*b.DogIntroduction = DogIntroQuick

	assert.Equal(t, DogIntroSlow, *a.DogIntroduction)
}

func TestAnswerSet_QuestionStatus(t *testing.T) {
	a := NewAnswerSet()
	a.CatBehavior = ptr(CatBehaviorCurious)

	assert.Equal(t, QuestionStatus{Cats: true}, a.QuestionStatus())
	assert.Equal(t, "curious", a.Behavior(FieldCatBehavior))
	assert.Equal(t, "", a.Behavior(FieldKidsBehavior))
}

func TestAnswerField_Kinds(t *testing.T) {
	assert.True(t, FieldKidsImportance.IsImportance())
	assert.False(t, FieldKidsBehavior.IsImportance())
	assert.True(t, FieldStrangersBehavior.IsKnown())
	assert.False(t, AnswerField("petType").IsKnown())
	assert.Len(t, AllFields, TotalFields)
}
