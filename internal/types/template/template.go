package template

import "resoluteAPI/internal/types/challenge"

// Template is a static preset used to prefill challenge creation. Templates
// are not persisted.
type Template struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Duration    int                 `json:"duration"`
	Category    string              `json:"category"`
	Icon        challenge.Icon      `json:"icon"`
	Subtasks    []challenge.Subtask `json:"subtasks"`
}

// Catalog is the fixed template set offered by the app.
var Catalog = []Template{
	{
		Name:        "Morning Journaling",
		Description: "Start your day with mindful reflection",
		Duration:    7,
		Category:    "Mindfulness",
		Icon:        challenge.IconPencil,
		Subtasks: []challenge.Subtask{
			{ID: "1", Name: "Write 3 things you're grateful for"},
			{ID: "2", Name: "Set intention for the day"},
		},
	},
	{
		Name:        "Gym Challenge",
		Description: "Build your fitness habit",
		Duration:    14,
		Category:    "Fitness",
		Icon:        challenge.IconDumbbell,
		Subtasks: []challenge.Subtask{
			{ID: "1", Name: "Complete workout"},
			{ID: "2", Name: "Stretch for 5 minutes"},
		},
	},
	{
		Name:        "Reading Sprint",
		Description: "Read every day for a week",
		Duration:    7,
		Category:    "Learning",
		Icon:        challenge.IconBook,
		Subtasks: []challenge.Subtask{
			{ID: "1", Name: "Read for 20 minutes"},
		},
	},
	{
		Name:        "Meditation Journey",
		Description: "Cultivate inner peace",
		Duration:    21,
		Category:    "Mindfulness",
		Icon:        challenge.IconBrain,
		Subtasks: []challenge.Subtask{
			{ID: "1", Name: "Meditate for 10 minutes"},
		},
	},
	{
		Name:        "Healthy Eating",
		Description: "Make better food choices",
		Duration:    14,
		Category:    "Health",
		Icon:        challenge.IconUtensils,
		Subtasks: []challenge.Subtask{
			{ID: "1", Name: "Eat a healthy breakfast"},
			{ID: "2", Name: "Drink 8 glasses of water"},
			{ID: "3", Name: "No processed snacks"},
		},
	},
	{
		Name:        "Sleep Better",
		Description: "Improve your sleep quality",
		Duration:    7,
		Category:    "Health",
		Icon:        challenge.IconMoon,
		Subtasks: []challenge.Subtask{
			{ID: "1", Name: "No screens 1 hour before bed"},
			{ID: "2", Name: "In bed by 10pm"},
		},
	},
}
