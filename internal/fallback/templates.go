package fallback

var programmingGoals = []string{"javascript", "typescript", "python", "golang", "rust", "java", "code", "coding", "programming", "react", "sql"}

var Templates = []Template{
	{
		Name:  "energized-programming",
		Moods: []string{"energized", "energetic", "motivated", "excited", "great"},
		Goals: programmingGoals,
		Plan: []string{
			"Warm up with a 10-minute coding kata",
			"Build one small feature end to end in a practice project",
			"Read the docs for one unfamiliar API you used today",
			"Write tests for the feature you built",
			"Push your work and note one thing to refactor tomorrow",
		},
	},
	{
		Name:  "tired-programming",
		Moods: []string{"tired", "sleepy", "exhausted", "low"},
		Goals: programmingGoals,
		Plan: []string{
			"Review yesterday's code for 15 minutes",
			"Watch one short tutorial on a concept you find tricky",
			"Fix one small bug or typo in your practice project",
		},
	},
	{
		Name:  "energized-language",
		Moods: []string{"energized", "energetic", "motivated", "excited"},
		Goals: []string{"spanish", "french", "german", "japanese", "chinese", "english", "language", "vocabulary"},
		Plan: []string{
			"Learn 15 new vocabulary words with spaced repetition",
			"Hold a 10-minute conversation or shadowing session",
			"Write a short paragraph using today's words",
			"Listen to a podcast episode in the target language",
		},
	},
	{
		Name:  "stressed",
		Moods: []string{"stressed", "anxious", "overwhelmed", "frustrated"},
		Goals: []string{Any},
		Plan: []string{
			"Take a 5-minute breathing break before starting",
			"Pick the single most important learning task for today",
			"Work on it in one focused 25-minute session",
			"Write down what went well, however small",
		},
	},
	{
		Name:  "tired",
		Moods: []string{"tired", "sleepy", "exhausted"},
		Goals: []string{Any},
		Plan: []string{
			"Spend 15 minutes reviewing notes from earlier sessions",
			"Do one light practice exercise",
			"Plan tomorrow's first task before resting",
		},
	},
	{
		Name:  "music",
		Moods: []string{Any},
		Goals: []string{"guitar", "piano", "music", "singing", "drums"},
		Plan: []string{
			"Warm up with scales for 10 minutes",
			"Practice one difficult passage slowly with a metronome",
			"Play through a full piece you already know",
			"Record yourself and listen back once",
		},
	},
	{
		Name:  "design",
		Moods: []string{Any},
		Goals: []string{"design", "drawing", "sketch", "artwork", "painting", "illustration"},
		Plan: []string{
			"Collect three reference pieces you admire",
			"Do a 20-minute study copying one of them",
			"Create one original sketch applying what you noticed",
		},
	},
	{
		Name:  "default",
		Moods: []string{Any},
		Goals: []string{Any},
		Plan: []string{
			"Review your learning goals for 5 minutes",
			"Complete one focused 25-minute study session",
			"Practice what you learned with a small exercise",
			"Write a short summary of today's progress",
		},
	},
}
