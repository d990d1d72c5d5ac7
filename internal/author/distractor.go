// Package author holds bank authoring tools: expanding single-select steps
// to a standard four options by generating plausible distractors, either
// heuristically or through an LLM provider.
package author

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Strategy names a family of distractor candidates.
type Strategy string

const (
	StrategyArithmetic Strategy = "arithmetic"
	StrategySequence   Strategy = "sequence"
	StrategyPeriodic   Strategy = "periodic"
	StrategyConcept    Strategy = "concept"
	StrategyText       Strategy = "text"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// periodLengthRe pulls the cycle length out of stems like "周期长度是4".
var periodLengthRe = regexp.MustCompile(`周期长度[是为]?(\d+)`)

// selectStrategy picks the candidate family from the step prompt and the
// correct answer text, mirroring how the banks phrase each problem family.
func selectStrategy(prompt, correct string) Strategy {
	if strings.Contains(prompt, "计算") || strings.Contains(prompt, "等于") ||
		strings.Contains(prompt, "多少") || digitsOnly.MatchString(correct) {
		if strings.Contains(prompt, "数列") || strings.Contains(prompt, "规律") ||
			strings.Contains(prompt, "第几个") {
			return StrategySequence
		}
		if strings.Contains(prompt, "周期") || strings.Contains(prompt, "重复") {
			return StrategyPeriodic
		}
		return StrategyArithmetic
	}

	for concept := range conceptDistractors {
		if strings.Contains(prompt, concept) {
			return StrategyConcept
		}
	}
	return StrategyText
}

// conceptDistractors maps a correct concept term to terms commonly confused
// with it.
var conceptDistractors = map[string][]string{
	"周长": {"面积", "体积", "表面积", "边长"},
	"面积": {"周长", "体积", "表面积", "半径"},
	"体积": {"面积", "周长", "表面积", "容量"},
	"和":  {"差", "积", "商", "平均值"},
	"差":  {"和", "积", "商", "余数"},
	"积":  {"和", "差", "商", "倍数"},
	"商":  {"和", "差", "积", "余数"},
	"倍数": {"约数", "因数", "质数", "合数"},
	"质数": {"合数", "偶数", "奇数", "因数"},
	"偶数": {"奇数", "质数", "合数", "自然数"},
	"奇数": {"偶数", "质数", "合数", "整数"},
}

var textDistractors = []string{
	"不一定", "可能", "也许", "大概", "基本",
	"部分", "全部", "有时", "经常", "很少",
	"增加", "减少", "不变", "相等", "不同",
	"第一", "第二", "第三", "第四", "最后",
	"最大", "最小", "中间", "平均", "总和",
}

// candidates lists possible distractor texts for a correct answer under the
// given strategy. Numeric strategies return nothing when the answer is not
// a number.
func candidates(strategy Strategy, correct string, periodLength int) []string {
	switch strategy {
	case StrategyArithmetic, StrategySequence, StrategyPeriodic:
		num, err := strconv.ParseFloat(correct, 64)
		if err != nil {
			return nil
		}
		return numericCandidates(strategy, num, periodLength)

	case StrategyConcept:
		return filterOut(conceptDistractors[correct], correct)

	default:
		return filterOut(textDistractors, correct)
	}
}

func numericCandidates(strategy Strategy, num float64, periodLength int) []string {
	switch strategy {
	case StrategySequence:
		return formatNums(num+2, num-2, num+3, num-3, num*3, num/3)
	case StrategyPeriodic:
		p := float64(periodLength)
		if p == 0 {
			p = 1
		}
		out := formatNums(num+1, num-1, num+p, num-p, p)
		return append(out, "0")
	default:
		return formatNums(num+1, num-1, num*2, num/2, num+10, num-10,
			math.Round(num*1.5), math.Round(num*0.5))
	}
}

// distractorFeedback writes the wrong-answer feedback for a generated
// distractor. Near misses get gentler wording than way-off answers.
func distractorFeedback(distractor, correct, prompt string) string {
	d, derr := strconv.ParseFloat(distractor, 64)
	c, cerr := strconv.ParseFloat(correct, 64)
	if derr == nil && cerr == nil {
		diff := math.Abs(d - c)
		switch {
		case diff == 1:
			return "很接近了！再仔细检查一下计算过程"
		case diff <= 5:
			return "不对，但思路是对的，可能是计算出现了小错误"
		default:
			return "错误。请重新理解题目要求并仔细计算"
		}
	}

	if strings.Contains(prompt, "周期") || strings.Contains(prompt, "重复") {
		return "错误。注意观察周期规律和位置对应关系"
	}
	if strings.Contains(prompt, "数列") || strings.Contains(prompt, "规律") {
		return "错误。重新分析数列的变化规律"
	}
	return "错误。请重新理解题目内容"
}

// extractPeriodLength reads the cycle length from a stem, or 0.
func extractPeriodLength(stem string) int {
	m := periodLengthRe.FindStringSubmatch(stem)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

func formatNums(nums ...float64) []string {
	out := make([]string, 0, len(nums))
	for _, n := range nums {
		out = append(out, formatNum(n))
	}
	return out
}

func formatNum(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func filterOut(list []string, drop string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != drop {
			out = append(out, s)
		}
	}
	return out
}
