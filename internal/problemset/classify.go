package problemset

import "strings"

// ProblemType is a coarse category derived from an item's taxonomy, used
// for filtering and per-type reporting.
type ProblemType string

const (
	TypeArithmetic   ProblemType = "arithmetic"
	TypeWordProblem  ProblemType = "word-problem"
	TypeGeometry     ProblemType = "geometry"
	TypeSequence     ProblemType = "sequence"
	TypeTreePlanting ProblemType = "tree-planting"
	TypeCompetition  ProblemType = "competition"
	TypeNumberTheory ProblemType = "number-theory"
	TypeLogic        ProblemType = "logic"
)

// DisplayName returns the Chinese display label for a problem type.
func (t ProblemType) DisplayName() string {
	switch t {
	case TypeArithmetic:
		return "计算题"
	case TypeWordProblem:
		return "应用题"
	case TypeGeometry:
		return "几何题"
	case TypeSequence:
		return "数列题"
	case TypeTreePlanting:
		return "植树问题"
	case TypeCompetition:
		return "竞赛题"
	case TypeNumberTheory:
		return "数论题"
	case TypeLogic:
		return "逻辑题"
	default:
		return string(t)
	}
}

// AllProblemTypes lists the known categories in display order.
var AllProblemTypes = []ProblemType{
	TypeArithmetic, TypeWordProblem, TypeGeometry, TypeSequence,
	TypeTreePlanting, TypeCompetition, TypeNumberTheory, TypeLogic,
}

// conceptMatchers maps a problem type to the taxonomy keywords that imply it.
var conceptMatchers = []struct {
	ptype    ProblemType
	keywords []string
}{
	{TypeGeometry, []string{"几何", "图形", "面积", "周长"}},
	{TypeSequence, []string{"数列", "等差", "规律"}},
	{TypeTreePlanting, []string{"植树", "间隔", "株距"}},
	{TypeNumberTheory, []string{"整除", "质数", "余数"}},
	{TypeLogic, []string{"逻辑", "推理"}},
	{TypeWordProblem, []string{"应用"}},
}

// idMatchers maps an item-id substring to a problem type.
var idMatchers = []struct {
	ptype  ProblemType
	substr string
}{
	{TypeTreePlanting, "tree-planting"},
	{TypeSequence, "arithmetic-seq"},
	{TypeCompetition, "hualuogeng"},
	{TypeCompetition, "preliminary"},
}

// Classify derives the problem types of an item from its id and taxonomy.
// Items that match nothing default to word-problem, or arithmetic when the
// taxonomy mentions computation.
func Classify(it *Item) []ProblemType {
	var types []ProblemType
	seen := make(map[ProblemType]bool)
	add := func(t ProblemType) {
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}

	id := strings.ToLower(it.ID)
	for _, m := range idMatchers {
		if strings.Contains(id, m.substr) {
			add(m.ptype)
		}
	}

	concepts := strings.Join(it.Taxonomy.Concepts, " ")
	skills := strings.Join(it.Taxonomy.Skills, " ")
	for _, m := range conceptMatchers {
		for _, kw := range m.keywords {
			if strings.Contains(concepts, kw) || (m.ptype == TypeWordProblem && strings.Contains(skills, "应用")) {
				add(m.ptype)
				break
			}
		}
	}

	if strings.Contains(concepts, "计算") || strings.Contains(concepts, "运算") {
		add(TypeArithmetic)
	}

	if len(types) == 0 {
		add(TypeWordProblem)
	}
	return types
}

// HasType reports whether the item belongs to any of the wanted types. An
// empty filter matches everything.
func HasType(it *Item, wanted []ProblemType) bool {
	if len(wanted) == 0 {
		return true
	}
	got := Classify(it)
	for _, w := range wanted {
		for _, g := range got {
			if w == g {
				return true
			}
		}
	}
	return false
}
