package problemset

// SampleSet returns the built-in problem set used when no bank files are
// found. It covers the shapes the trainer has to handle: templated
// variables, multi-step transitions with retry loops, a multiple-select
// step, and progressive hints.
func SampleSet() *ProblemSet {
	return &ProblemSet{
		ID:      "builtin-001",
		Version: "1.0.0",
		Locale:  "zh-CN",
		Metadata: Metadata{
			GradeBand: "G3-G4",
			Subject:   "Math",
			Tags:      []string{"内置", "示例"},
			CreatedAt: "2025-01-18T10:00:00Z",
			Author:    "stepmath",
		},
		Items: []Item{
			{
				ID: "builtin-apples",
				Stem: Stem{
					Text: "小明有 ${a} 个苹果，送给小红 ${b} 个，还剩多少个？",
					Variables: map[string]VariableSpec{
						"a": {Type: "int", Range: &VariableRange{Min: 20, Max: 50}, Constraints: []string{"even"}},
						"b": {Type: "int", Range: &VariableRange{Min: 3, Max: 15}},
					},
				},
				Taxonomy: Taxonomy{
					Concepts:   []string{"减法运算", "应用题"},
					Skills:     []string{"提取条件", "列式计算"},
					Difficulty: DifficultyEasy,
				},
				Steps: []Step{
					{
						ID:     "s1",
						Type:   StepExtract,
						Prompt: "题目中的已知条件是什么？（可多选）",
						Options: []Option{
							{ID: "s1o1", Text: "小明有 ${a} 个苹果", Correct: true, Feedback: "对，这是第一个条件"},
							{ID: "s1o2", Text: "送给小红 ${b} 个", Correct: true, Feedback: "对，这是第二个条件"},
							{ID: "s1o3", Text: "小红有 ${b} 个苹果", Correct: false, Feedback: "题目没有说小红原来有多少个"},
						},
						MultipleSelect: true,
						Hints: []string{
							"仔细读题，找出题目直接告诉你的数量。",
							"条件有两个：小明原有的数量，和送出去的数量。",
						},
					},
					{
						ID:     "s2",
						Type:   StepRelation,
						Prompt: "应该用什么方法计算剩下的苹果？",
						Options: []Option{
							{ID: "s2o1", Text: "${a} - ${b}", Correct: true, Feedback: "正确！剩下 = 原有 - 送出"},
							{ID: "s2o2", Text: "${a} + ${b}", Correct: false, Feedback: "加法会算出更多苹果，想想送出后是变多还是变少"},
							{ID: "s2o3", Text: "${b} - ${a}", Correct: false, Feedback: "被减数和减数的位置反了"},
						},
						Hints: []string{"送出苹果后，小明的苹果是变多还是变少？"},
					},
					{
						ID:     "s3",
						Type:   StepCompute,
						Prompt: "剩下多少个苹果？",
						Options: []Option{
							{ID: "s3o1", Text: "${a - b} 个", Correct: true, Feedback: "做得好！"},
							{ID: "s3o2", Text: "${a - b + 2} 个", Correct: false, Feedback: "再仔细算一算"},
							{ID: "s3o3", Text: "${a + b} 个", Correct: false, Feedback: "这是两数之和，不是剩下的数量"},
						},
					},
				},
				Transitions: []Transition{
					{FromStep: "s1", OnCorrect: "s2", OnWrong: "s1", MaxRetries: 2},
					{FromStep: "s2", OnCorrect: "s3", OnWrong: "s2", MaxRetries: 2},
					{FromStep: "s3", OnCorrect: "", OnWrong: "s3", MaxRetries: 2},
				},
				Scoring: Scoring{
					Total: 30,
					PerStep: map[string]ScoringRule{
						"s1": {Score: 10, PenaltyPerRetry: 50, MinScore: 1},
						"s2": {Score: 10, PenaltyPerRetry: 50, MinScore: 1},
						"s3": {Score: 10, PenaltyPerRetry: 50, MinScore: 1},
					},
				},
				Answer: Answer{
					Final:     "a - b",
					Unit:      "个",
					Rationale: "剩下的数量等于原有数量减去送出数量",
				},
			},
			{
				ID: "builtin-tree-planting",
				Stem: Stem{
					Text: "一条小路长 ${n * 5} 米，每隔 5 米种一棵树，两端都种，一共要种多少棵树？",
					Variables: map[string]VariableSpec{
						"n": {Type: "int", Range: &VariableRange{Min: 4, Max: 12}},
					},
				},
				Taxonomy: Taxonomy{
					Concepts:   []string{"植树问题", "间隔"},
					Skills:     []string{"建立关系", "应用"},
					Difficulty: DifficultyMedium,
				},
				Steps: []Step{
					{
						ID:     "t1",
						Type:   StepQuestion,
						Prompt: "这道题要求的是什么？",
						Options: []Option{
							{ID: "t1o1", Text: "要种的树的棵数", Correct: true, Feedback: "正确"},
							{ID: "t1o2", Text: "小路的长度", Correct: false, Feedback: "小路长度是已知条件，不是问题"},
							{ID: "t1o3", Text: "树与树的间隔", Correct: false, Feedback: "间隔 5 米也是已知条件"},
						},
					},
					{
						ID:     "t2",
						Type:   StepRelation,
						Prompt: "两端都种时，棵数与段数是什么关系？",
						Options: []Option{
							{ID: "t2o1", Text: "棵数 = 段数 + 1", Correct: true, Feedback: "对！两端都种要多一棵"},
							{ID: "t2o2", Text: "棵数 = 段数", Correct: false, Feedback: "这是只种一端的情形"},
							{ID: "t2o3", Text: "棵数 = 段数 - 1", Correct: false, Feedback: "这是两端都不种的情形"},
						},
						Hints: []string{
							"想象一条 10 米的小路，每 5 米种一棵，画一画。",
							"段数 = 总长 ÷ 间隔，两端都种时棵数比段数多 1。",
						},
					},
					{
						ID:     "t3",
						Type:   StepCompute,
						Prompt: "一共要种多少棵树？",
						Options: []Option{
							{ID: "t3o1", Text: "${n + 1} 棵", Correct: true, Feedback: "做得好！"},
							{ID: "t3o2", Text: "${n} 棵", Correct: false, Feedback: "忘了两端都种要加 1"},
							{ID: "t3o3", Text: "${n - 1} 棵", Correct: false, Feedback: "这是两端都不种的答案"},
						},
					},
				},
				Transitions: []Transition{
					{FromStep: "t1", OnCorrect: "t2", OnWrong: "t1", MaxRetries: 2},
					{FromStep: "t2", OnCorrect: "t3", OnWrong: "t2", MaxRetries: 3},
					{FromStep: "t3", OnCorrect: "", OnWrong: "t3", MaxRetries: 2},
				},
				Scoring: Scoring{
					Total: 30,
					PerStep: map[string]ScoringRule{
						"t1": {Score: 5, PenaltyPerRetry: 50, MinScore: 1},
						"t2": {Score: 15, PenaltyPerRetry: 40, MinScore: 2},
						"t3": {Score: 10, PenaltyPerRetry: 50, MinScore: 1},
					},
				},
				Answer: Answer{
					Final:     "n + 1",
					Unit:      "棵",
					Rationale: "段数 = 总长 ÷ 间隔 = n，两端都种时棵数 = 段数 + 1",
				},
			},
		},
	}
}
