package tones

const positiveInstructions = `Enhance this positive review to make it more articulate, professional, and polished, while keeping the original sentiment intact. Return only one improved version, not multiple options:`

const constructiveInstructions = `Enhance this feedback to make it more constructive, actionable, and professional, while keeping the original concerns intact. Return only one improved version, not multiple options:`

var defaults = map[Tone]string{
	TonePositive:     positiveInstructions,
	ToneConstructive: constructiveInstructions,
}

// DefaultInstructions returns the hardcoded instructions for a tone.
// Returns ErrInvalidTone if the tone is not recognized.
func DefaultInstructions(tone Tone) (string, error) {
	text, ok := defaults[tone]
	if !ok {
		return "", ErrInvalidTone
	}
	return text, nil
}
