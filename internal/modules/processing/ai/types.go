package ai

// Flashcard is one question/answer pair from the flashcard output.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// MCQ is one multiple-choice question. Options are keyed "A" through "D".
type MCQ struct {
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
	Answer   string            `json:"answer"`
}

// FlashcardSet keeps the model's raw text next to the parsed cards.
type FlashcardSet struct {
	Raw   string
	Cards []Flashcard
}

type MCQSet struct {
	Raw       string
	Questions []MCQ
}
