package questionnaire

// Instructions is shown above the questionnaire.
const Instructions = "Please answer all questions by selecting one option for each"

// Seed returns the course behavior questionnaire served by default.
func Seed() *Catalog {
	return NewCatalog("Q",
		Question{
			ID:   "Q1",
			Text: "How did you handle your first assignment in this course?",
			Options: []string{
				"Submitted early (wow, okay overachiever 🌟)",
				"Submitted on time (solid responsible energy)",
				"Submitted at the last minute (\"adrenaline is my project manager\")",
				"Submitted late (but with hope in your heart)",
				"I meant to submit it… spiritually",
			},
		},
		Question{
			ID:   "Q2",
			Text: "When you didn't understand something, what did you do?",
			Options: []string{
				"Asked ChatGPT (your new emotional support AI 🤖✨)",
				"Went to office hours (professional, brave, gold star)",
				"Asked on Discord (\"help pls\" vibe)",
				"Googled aggressively",
				"Pretended to understand and prayed for the best",
			},
		},
		Question{
			ID:   "Q3",
			Text: "How do you engage in class?",
			Options: []string{
				"I keep my camera on (the bravery!)",
				"I share my screen in breakout rooms (champion behavior)",
				"I ask questions (Mikuláš approves)",
				"I type in the chat (participation ninja)",
				"I observe… quietly… like a wildlife researcher",
			},
		},
		Question{
			ID:   "Q4",
			Text: "How many hours did you spend on the assignment?",
			Options: []string{
				"More than 10 hours (Angel fainted from joy)",
				"5–10 hours (model student energy)",
				"1 hour (efficient or reckless? undecided)",
				"Not at all (classic)",
			},
		},
	)
}
