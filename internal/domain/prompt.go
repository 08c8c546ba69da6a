package domain

import (
	"fmt"
	"strings"
)

// BaseQuizCount is the per-topic question count used when a request omits one.
const BaseQuizCount = 5

const promptTemplate = `Create %d multiple choice questions about knowledge of Javascript, CSS, and HTML. The difficulty of each question is one of %s. Questions must not be duplicated. The number of questions about Javascript is %d, the number of questions about HTML is %d, the number of questions about CSS is %d. Each question has exactly 4 choices and there may be one or more correct options. Every answer is accompanied by an explanation for the correct options. Correct options are zero-based indices into the choices. Reply with minified JSON only, without markdown, in the following format:

{"questions":[{"question":string,"choices":[string,string,string,string],"level":%s,"type":"%s" or "%s" or "%s"}],"answers":[{"correct":[number,...],"explanation":string}]}

The answers array must contain exactly one entry per question, in the same order.`

// BuildPrompt renders the generation instruction for the given topic counts
// and returns it along with the total number of questions requested.
func BuildPrompt(counts TopicCounts) (string, int) {
	total := counts.Total()
	levels := quotedLevels()
	prompt := fmt.Sprintf(promptTemplate,
		total,
		levels,
		counts.JS, counts.HTML, counts.CSS,
		levels,
		TopicJS, TopicCSS, TopicHTML,
	)
	return prompt, total
}

func quotedLevels() string {
	quoted := make([]string, len(Levels))
	for i, l := range Levels {
		quoted[i] = fmt.Sprintf("%q", string(l))
	}
	return strings.Join(quoted, " or ")
}
