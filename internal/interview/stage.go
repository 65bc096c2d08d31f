package interview

// Stage is a Session's position in the interview state machine.
type Stage string

const (
	StageGreeting          Stage = "GREETING"
	StageCollectingInfo    Stage = "COLLECTING_INFO"
	StageTechStackDeclared Stage = "TECH_STACK_DECLARED"
	StageAskingQuestions   Stage = "ASKING_QUESTIONS"
	StageAwaitingAnswers   Stage = "AWAITING_ANSWERS"
	StageSentimentSummary  Stage = "SENTIMENT_SUMMARY"
	StageConcluded         Stage = "CONCLUDED"
)

// Stages lists every stage in interview order.
var Stages = []Stage{
	StageGreeting,
	StageCollectingInfo,
	StageTechStackDeclared,
	StageAskingQuestions,
	StageAwaitingAnswers,
	StageSentimentSummary,
	StageConcluded,
}

// transitions is the closed transition table. Any non-terminal stage may
// also move to StageConcluded on an exit keyword.
var transitions = map[Stage][]Stage{
	StageGreeting:          {StageCollectingInfo},
	StageCollectingInfo:    {StageCollectingInfo, StageTechStackDeclared},
	StageTechStackDeclared: {StageAskingQuestions},
	StageAskingQuestions:   {StageAwaitingAnswers, StageSentimentSummary},
	StageAwaitingAnswers:   {StageAskingQuestions, StageSentimentSummary},
	StageSentimentSummary:  {StageConcluded},
}

// CanTransition reports whether from → to is a legal move.
func CanTransition(from, to Stage) bool {
	if from == StageConcluded {
		return false
	}
	if to == StageConcluded {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether s accepts no further transitions.
func (s Stage) Terminal() bool { return s == StageConcluded }

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}
