package ai

import "strings"

const (
	summaryPromptTemplate = `Summarize this educational content for a college student.

Output format:
- Section-wise summary
- Key points
- Definitions or formulas
- Important takeaways

Content:
{{content}}`

	flashcardsPromptTemplate = `Create exactly **10 study flashcards** from the content below.
Format strictly:
Q: <question>
A: <answer>

Content:
{{content}}`

	mcqsPromptTemplate = `Generate **10 multiple choice questions** from the following content.

For each question include:
- 4 options (A–D)
- Correct answer at the end.

Format strictly:
Q1. <question>
A. <option>
B. <option>
C. <option>
D. <option>
Answer: <A/B/C/D>

Content:
{{content}}`
)

// Task names double as metrics labels.
const (
	TaskSummary    = "summary"
	TaskFlashcards = "flashcards"
	TaskMCQs       = "mcqs"
)

func buildPrompt(task, content string) string {
	var tpl string
	switch task {
	case TaskFlashcards:
		tpl = flashcardsPromptTemplate
	case TaskMCQs:
		tpl = mcqsPromptTemplate
	default:
		tpl = summaryPromptTemplate
	}
	return strings.Replace(tpl, "{{content}}", content, 1)
}
