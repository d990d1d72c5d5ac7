package problemset

// Types mirroring the problem-set JSON interchange format. Field names are
// fixed for compatibility with existing bank files; do not rename tags.

// Difficulty is the item difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "E"
	DifficultyMedium Difficulty = "M"
	DifficultyHard   Difficulty = "H"
)

// StepType labels the cognitive phase of a step. Display only; it carries
// no behavioral branching in the trainer.
type StepType string

const (
	StepRead     StepType = "read"
	StepExtract  StepType = "extract"
	StepQuestion StepType = "question"
	StepRelation StepType = "relation"
	StepPlan     StepType = "plan"
	StepCompute  StepType = "compute"
	StepCheck    StepType = "check"
)

// DisplayName returns the Chinese display label for a step type.
func (t StepType) DisplayName() string {
	switch t {
	case StepRead:
		return "读题"
	case StepExtract:
		return "提取条件"
	case StepQuestion:
		return "明确问题"
	case StepRelation:
		return "建立关系"
	case StepPlan:
		return "制定计划"
	case StepCompute:
		return "执行运算"
	case StepCheck:
		return "检查校验"
	default:
		return string(t)
	}
}

// VariableRange bounds a randomized variable.
type VariableRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// VariableSpec describes how to instantiate one templated variable.
type VariableSpec struct {
	Type        string         `json:"type"` // "int", "float", "choice"
	Range       *VariableRange `json:"range,omitempty"`
	Choices     []float64      `json:"choices,omitempty"`
	Constraints []string       `json:"constraints,omitempty"`
}

// Stem is the word-problem statement with optional randomized variables.
type Stem struct {
	Text      string                  `json:"text"`
	Assets    []string                `json:"assets,omitempty"`
	Variables map[string]VariableSpec `json:"variables,omitempty"`
}

// Taxonomy classifies an item for filtering and reporting.
type Taxonomy struct {
	Concepts   []string   `json:"concepts"`
	Skills     []string   `json:"skills"`
	Difficulty Difficulty `json:"difficulty"`
}

// Option is one selectable answer for a step.
type Option struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	Correct        bool   `json:"correct"`
	DistractorType string `json:"distractorType,omitempty"`
	Feedback       string `json:"feedback,omitempty"`
	NextStep       string `json:"nextStep,omitempty"`
}

// Validation carries optional authoring metadata for a step.
type Validation struct {
	Unit              string   `json:"unit,omitempty"`
	MustUseConditions []string `json:"mustUseConditions,omitempty"`
}

// Step is one node in the guided sequence of an item.
type Step struct {
	ID             string      `json:"id"`
	Type           StepType    `json:"type"`
	Prompt         string      `json:"prompt"`
	Options        []Option    `json:"options"`
	MultipleSelect bool        `json:"multipleSelect,omitempty"`
	Hints          []string    `json:"hints,omitempty"`
	Validation     *Validation `json:"validation,omitempty"`
	TelemetryKeys  []string    `json:"telemetryKeys,omitempty"`
}

// CorrectOptionIDs returns the ids of all options flagged correct.
func (s *Step) CorrectOptionIDs() []string {
	var ids []string
	for _, o := range s.Options {
		if o.Correct {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// OptionByID returns the option with the given id, or nil.
func (s *Step) OptionByID(id string) *Option {
	for i := range s.Options {
		if s.Options[i].ID == id {
			return &s.Options[i]
		}
	}
	return nil
}

// Transition is the directed edge leaving a step. An empty target means
// "item complete".
type Transition struct {
	FromStep   string `json:"fromStep"`
	OnWrong    string `json:"onWrong"`
	OnCorrect  string `json:"onCorrect"`
	MaxRetries int    `json:"maxRetries"`
}

// ScoringRule is the per-step scoring policy.
type ScoringRule struct {
	Score           float64 `json:"score"`
	PenaltyPerRetry float64 `json:"penaltyPerRetry,omitempty"` // percent per retry, 0-100
	MinScore        float64 `json:"minScore,omitempty"`
	TimeBonus       float64 `json:"timeBonus,omitempty"`
}

// Scoring holds the item total and the per-step rules keyed by step id.
type Scoring struct {
	Total   float64                `json:"total"`
	PerStep map[string]ScoringRule `json:"perStep"`
}

// Answer is the canonical final answer. Informational only; the trainer
// grades step options, never this value.
type Answer struct {
	Final     string `json:"final"`
	Unit      string `json:"unit"`
	Rationale string `json:"rationale"`
}

// Item is one complete word problem.
type Item struct {
	ID          string       `json:"id"`
	Stem        Stem         `json:"stem"`
	Taxonomy    Taxonomy     `json:"taxonomy"`
	Steps       []Step       `json:"steps"`
	Transitions []Transition `json:"transitions"`
	Scoring     Scoring      `json:"scoring"`
	Answer      Answer       `json:"answer"`
}

// StepByID returns the step with the given id, or nil.
func (it *Item) StepByID(id string) *Step {
	for i := range it.Steps {
		if it.Steps[i].ID == id {
			return &it.Steps[i]
		}
	}
	return nil
}

// StepIndex returns the index of the step with the given id, or -1.
func (it *Item) StepIndex(id string) int {
	for i := range it.Steps {
		if it.Steps[i].ID == id {
			return i
		}
	}
	return -1
}

// TransitionFrom returns the transition leaving the given step, or nil if
// the step is terminal.
func (it *Item) TransitionFrom(stepID string) *Transition {
	for i := range it.Transitions {
		if it.Transitions[i].FromStep == stepID {
			return &it.Transitions[i]
		}
	}
	return nil
}

// RuleFor returns the scoring rule for a step and whether one exists.
func (it *Item) RuleFor(stepID string) (ScoringRule, bool) {
	r, ok := it.Scoring.PerStep[stepID]
	return r, ok
}

// Metadata describes a problem set.
type Metadata struct {
	GradeBand string   `json:"gradeBand"`
	Subject   string   `json:"subject"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
	Author    string   `json:"author"`
}

// ProblemSet is a named, versioned collection of items. It owns its items
// exclusively; the trainer treats a loaded set as an immutable snapshot.
type ProblemSet struct {
	SchemaURL string   `json:"$schema,omitempty"`
	ID        string   `json:"id"`
	Version   string   `json:"version"`
	Locale    string   `json:"locale"`
	Metadata  Metadata `json:"metadata"`
	Items     []Item   `json:"items"`
}

// MaxScore sums the item score totals.
func (ps *ProblemSet) MaxScore() float64 {
	var total float64
	for i := range ps.Items {
		total += ps.Items[i].Scoring.Total
	}
	return total
}
