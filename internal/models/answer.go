package models

type DogIntroduction string
type CatBehavior string
type KidsBehavior string
type StrangersBehavior string

const (
	DogIntroSlow       DogIntroduction = "slow"
	DogIntroSupervised DogIntroduction = "supervised"
	DogIntroQuick      DogIntroduction = "quick"
	DogIntroAvoid      DogIntroduction = "avoid"

	CatBehaviorCalm    CatBehavior = "calm"
	CatBehaviorCurious CatBehavior = "curious"
	CatBehaviorChase   CatBehavior = "chase"
	CatBehaviorAvoid   CatBehavior = "avoid"

	KidsBehaviorGentle   KidsBehavior = "gentle"
	KidsBehaviorTolerant KidsBehavior = "tolerant"
	KidsBehaviorNervous  KidsBehavior = "nervous"
	KidsBehaviorAvoid    KidsBehavior = "avoid"

	StrangersShy        StrangersBehavior = "shy"
	StrangersFriendly   StrangersBehavior = "friendly"
	StrangersCautious   StrangersBehavior = "cautious"
	StrangersProtective StrangersBehavior = "protective"
)

// AnswerField names one of the eight quiz answers by its JSON key.
type AnswerField string

const (
	FieldDogsImportance      AnswerField = "dogsImportance"
	FieldDogIntroduction     AnswerField = "dogIntroduction"
	FieldCatsImportance      AnswerField = "catsImportance"
	FieldCatBehavior         AnswerField = "catBehavior"
	FieldKidsImportance      AnswerField = "kidsImportance"
	FieldKidsBehavior        AnswerField = "kidsBehavior"
	FieldStrangersImportance AnswerField = "strangersImportance"
	FieldStrangersBehavior   AnswerField = "strangersBehavior"
)

const (
	DefaultImportance = 2
	MinImportance     = 1
	MaxImportance     = 5

	// TotalFields counts every answer, not only the required ones.
	TotalFields = 8
)

// AllFields lists the answers in questionnaire order.
var AllFields = []AnswerField{
	FieldDogsImportance,
	FieldDogIntroduction,
	FieldCatsImportance,
	FieldCatBehavior,
	FieldKidsImportance,
	FieldKidsBehavior,
	FieldStrangersImportance,
	FieldStrangersBehavior,
}

// RequiredFields gate completion. The order decides which field is reported
// first when the quiz is incomplete.
var RequiredFields = []AnswerField{
	FieldDogIntroduction,
	FieldCatBehavior,
	FieldKidsBehavior,
	FieldStrangersBehavior,
}

// IsImportance reports whether the field holds a 1-5 rating.
func (f AnswerField) IsImportance() bool {
	switch f {
	case FieldDogsImportance, FieldCatsImportance, FieldKidsImportance, FieldStrangersImportance:
		return true
	}
	return false
}

// IsKnown reports whether f is one of the eight quiz answers.
func (f AnswerField) IsKnown() bool {
	for _, known := range AllFields {
		if f == known {
			return true
		}
	}
	return false
}

// AnswerSet is the in-progress response of one quiz-taking session.
type AnswerSet struct {
	DogsImportance      int                `json:"dogsImportance" validate:"min=1,max=5"`
	DogIntroduction     *DogIntroduction   `json:"dogIntroduction" validate:"omitempty,dog_introduction"`
	CatsImportance      int                `json:"catsImportance" validate:"min=1,max=5"`
	CatBehavior         *CatBehavior       `json:"catBehavior" validate:"omitempty,cat_behavior"`
	KidsImportance      int                `json:"kidsImportance" validate:"min=1,max=5"`
	KidsBehavior        *KidsBehavior      `json:"kidsBehavior" validate:"omitempty,kids_behavior"`
	StrangersImportance int                `json:"strangersImportance" validate:"min=1,max=5"`
	StrangersBehavior   *StrangersBehavior `json:"strangersBehavior" validate:"omitempty,strangers_behavior"`
}

func NewAnswerSet() AnswerSet {
	return AnswerSet{
		DogsImportance:      DefaultImportance,
		CatsImportance:      DefaultImportance,
		KidsImportance:      DefaultImportance,
		StrangersImportance: DefaultImportance,
	}
}

// IsAnswered reports whether the field holds a value. Importance fields are
// always answered.
func (a AnswerSet) IsAnswered(field AnswerField) bool {
	switch field {
	case FieldDogsImportance, FieldCatsImportance, FieldKidsImportance, FieldStrangersImportance:
		return true
	case FieldDogIntroduction:
		return a.DogIntroduction != nil
	case FieldCatBehavior:
		return a.CatBehavior != nil
	case FieldKidsBehavior:
		return a.KidsBehavior != nil
	case FieldStrangersBehavior:
		return a.StrangersBehavior != nil
	}
	return false
}

func (a AnswerSet) IsComplete() bool {
	_, missing := a.FirstUnanswered()
	return !missing
}

// FirstUnanswered returns the first required field without a value.
func (a AnswerSet) FirstUnanswered() (AnswerField, bool) {
	for _, field := range RequiredFields {
		if !a.IsAnswered(field) {
			return field, true
		}
	}
	return "", false
}

// AnsweredCount counts non-null answers across all eight fields.
func (a AnswerSet) AnsweredCount() int {
	count := 0
	for _, field := range AllFields {
		if a.IsAnswered(field) {
			count++
		}
	}
	return count
}

// Clone copies the set so pointer fields are not shared.
func (a AnswerSet) Clone() AnswerSet {
	out := a
	if a.DogIntroduction != nil {
		v := *a.DogIntroduction
		out.DogIntroduction = &v
	}
	if a.CatBehavior != nil {
		v := *a.CatBehavior
		out.CatBehavior = &v
	}
	if a.KidsBehavior != nil {
		v := *a.KidsBehavior
		out.KidsBehavior = &v
	}
	if a.StrangersBehavior != nil {
		v := *a.StrangersBehavior
		out.StrangersBehavior = &v
	}
	return out
}

// Importance returns the rating held by an importance field.
func (a AnswerSet) Importance(field AnswerField) (int, bool) {
	switch field {
	case FieldDogsImportance:
		return a.DogsImportance, true
	case FieldCatsImportance:
		return a.CatsImportance, true
	case FieldKidsImportance:
		return a.KidsImportance, true
	case FieldStrangersImportance:
		return a.StrangersImportance, true
	}
	return 0, false
}

// Behavior returns the string value of a behavior field, empty when unanswered.
func (a AnswerSet) Behavior(field AnswerField) string {
	switch field {
	case FieldDogIntroduction:
		if a.DogIntroduction != nil {
			return string(*a.DogIntroduction)
		}
	case FieldCatBehavior:
		if a.CatBehavior != nil {
			return string(*a.CatBehavior)
		}
	case FieldKidsBehavior:
		if a.KidsBehavior != nil {
			return string(*a.KidsBehavior)
		}
	case FieldStrangersBehavior:
		if a.StrangersBehavior != nil {
			return string(*a.StrangersBehavior)
		}
	}
	return ""
}

// QuestionStatus flags which required questions have been answered.
type QuestionStatus struct {
	Dogs      bool `json:"dogs"`
	Cats      bool `json:"cats"`
	Kids      bool `json:"kids"`
	Strangers bool `json:"strangers"`
}

func (a AnswerSet) QuestionStatus() QuestionStatus {
	return QuestionStatus{
		Dogs:      a.IsAnswered(FieldDogIntroduction),
		Cats:      a.IsAnswered(FieldCatBehavior),
		Kids:      a.IsAnswered(FieldKidsBehavior),
		Strangers: a.IsAnswered(FieldStrangersBehavior),
	}
}
