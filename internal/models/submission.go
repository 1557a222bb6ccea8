package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Placeholder scores sent for the traits the quiz does not ask about yet.
const (
	PlaceholderEnergy    = 3
	PlaceholderAffection = 3
	PlaceholderTraining  = 3
)

type PayloadMeta struct {
	DogsImportance      int `json:"dogsImportance"`
	CatsImportance      int `json:"catsImportance"`
	KidsImportance      int `json:"kidsImportance"`
	StrangersImportance int `json:"strangersImportance"`
}

// SubmissionPayload is the body posted to the quick-match endpoint.
// strangersBehavior is collected but never sent.
type SubmissionPayload struct {
	Dogs      *DogIntroduction `json:"dogs"`
	Cats      *CatBehavior     `json:"cats"`
	Kids      *KidsBehavior    `json:"kids"`
	Energy    int              `json:"energy"`
	Affection int              `json:"affection"`
	Training  int              `json:"training"`
	Meta      PayloadMeta      `json:"meta"`
}

func NewSubmissionPayload(a AnswerSet) SubmissionPayload {
	a = a.Clone()
	return SubmissionPayload{
		Dogs:      a.DogIntroduction,
		Cats:      a.CatBehavior,
		Kids:      a.KidsBehavior,
		Energy:    PlaceholderEnergy,
		Affection: PlaceholderAffection,
		Training:  PlaceholderTraining,
		Meta: PayloadMeta{
			DogsImportance:      a.DogsImportance,
			CatsImportance:      a.CatsImportance,
			KidsImportance:      a.KidsImportance,
			StrangersImportance: a.StrangersImportance,
		},
	}
}

// SubmissionOutcome pairs the payload that was sent with the backend's
// response body, which is forwarded untouched.
type SubmissionOutcome struct {
	Payload  SubmissionPayload `json:"payload"`
	Response json.RawMessage   `json:"response,omitempty"`
}

type Progress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

func NewProgress(completed int) Progress {
	return Progress{
		Completed:  completed,
		Total:      TotalFields,
		Percentage: int(math.Round(float64(completed) / float64(TotalFields) * 100)),
	}
}

func (p Progress) String() string {
	return fmt.Sprintf("%d/%d", p.Completed, p.Total)
}
