package ai

import (
	"regexp"
	"strings"
)

var (
	questionLine = regexp.MustCompile(`^(?:\*\*)?(?:\d+[.)]\s*)?(?:\*\*)?Q(?:\d+)?\s*[:.)]\s*(?:\*\*)?\s*(.*)$`)
	numberedLine = regexp.MustCompile(`^(?:\*\*)?\d+[.)]\s*(?:\*\*)?\s*(.+)$`)
	answerLine   = regexp.MustCompile(`^(?:\*\*)?A\s*:\s*(?:\*\*)?\s*(.*)$`)
	optionLine   = regexp.MustCompile(`^(?:\*\*)?([A-D])\s*[.):]\s*(?:\*\*)?\s*(.*)$`)
	correctLine  = regexp.MustCompile(`(?i)^(?:\*\*)?(?:correct\s+)?answer\s*:\s*(?:\*\*)?\s*\(?([A-D])\b`)
)

func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-• ")
	return strings.TrimSpace(line)
}

// ParseFlashcards extracts Q:/A: pairs, optionally numbered ("1. Q: ..."). Continuation lines are appended to the
// current question or answer; cards missing either half are dropped.
func ParseFlashcards(raw string) []Flashcard {
	cards := make([]Flashcard, 0, 10)
	var cur *Flashcard
	inAnswer := false

	flush := func() {
		if cur == nil {
			return
		}
		cur.Question = strings.TrimSpace(cur.Question)
		cur.Answer = strings.TrimSpace(cur.Answer)
		if cur.Question != "" && cur.Answer != "" {
			cards = append(cards, *cur)
		}
		cur = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = cleanLine(line)
		if line == "" {
			continue
		}
		if m := questionLine.FindStringSubmatch(line); m != nil {
			flush()
			cur = &Flashcard{Question: strings.TrimSuffix(m[1], "**")}
			inAnswer = false
			continue
		}
		if cur == nil {
			continue
		}
		if m := answerLine.FindStringSubmatch(line); m != nil {
			cur.Answer = strings.TrimSuffix(m[1], "**")
			inAnswer = true
			continue
		}
		if inAnswer {
			cur.Answer += " " + line
		} else {
			cur.Question += " " + line
		}
	}
	flush()
	return cards
}

// ParseMCQs extracts questions ("Q1." or plain "1.") with A-D options written
// as "A.", "A)" or "A:", and an Answer line.
// Questions without all four options or a valid answer are dropped.
func ParseMCQs(raw string) []MCQ {
	questions := make([]MCQ, 0, 10)
	var cur *MCQ

	flush := func() {
		if cur == nil {
			return
		}
		cur.Question = strings.TrimSpace(cur.Question)
		if cur.Question != "" && len(cur.Options) == 4 && cur.Answer != "" {
			if _, ok := cur.Options[cur.Answer]; ok {
				questions = append(questions, *cur)
			}
		}
		cur = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = cleanLine(line)
		if line == "" {
			continue
		}
		if m := correctLine.FindStringSubmatch(line); m != nil {
			if cur != nil {
				cur.Answer = strings.ToUpper(m[1])
			}
			continue
		}
		m := questionLine.FindStringSubmatch(line)
		if m == nil {
			m = numberedLine.FindStringSubmatch(line)
		}
		if m != nil {
			flush()
			cur = &MCQ{Question: strings.TrimSuffix(m[1], "**"), Options: make(map[string]string, 4)}
			continue
		}
		if cur == nil {
			continue
		}
		if m := optionLine.FindStringSubmatch(line); m != nil {
			cur.Options[m[1]] = strings.TrimSpace(m[2])
			continue
		}
		if len(cur.Options) == 0 {
			cur.Question += " " + line
		}
	}
	flush()
	return questions
}
