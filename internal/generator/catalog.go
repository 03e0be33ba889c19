package generator

type quote struct {
	Text   string
	Author string
}

type crystal struct {
	Name        string
	Description string
}

var quotes = []quote{
	{Text: "The universe is not outside of you. Look inside yourself; everything that you want, you already are.", Author: "Rumi"},
	{Text: "What you seek is seeking you.", Author: "Rumi"},
	{Text: "Silence is the language of God, all else is poor translation.", Author: "Rumi"},
	{Text: "The wound is the place where the Light enters you.", Author: "Rumi"},
	{Text: "Do not feel lonely, the entire universe is inside you.", Author: "Rumi"},
}

var crystals = []crystal{
	{Name: "Amethyst", Description: "A protective stone that helps relieve stress and anxiety."},
	{Name: "Rose Quartz", Description: "The stone of universal love. Restores trust and harmony."},
	{Name: "Citrine", Description: "Attracts wealth, prosperity and success."},
	{Name: "Clear Quartz", Description: "The master healer. Amplifies energy and thought."},
}

var unityMessages = []string{
	"We are not separate drops, but one ocean.",
	"Every heartbeat echoes the rhythm of the universe.",
	"Your consciousness is a ripple in the cosmic ocean.",
	"Beyond borders, beyond differences, we are one.",
	"The same light shines through every window of the soul.",
}

var unityQuestions = []string{
	"Where do you feel most connected to humanity?",
	"Share a moment that reminded you we're all one.",
	"How do you practice global unity in daily life?",
}
