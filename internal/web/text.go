package web

var (
	HeroHeadline = "Hi, I'm Vichaksha Viduranga"

	HeroIntro = `I build intelligent, end-to-end web and AI-powered systems using modern
	full-stack technologies. From designing intuitive user interfaces in React
	to architecting scalable microservices in Spring Boot or Node.js, I thrive on
	solving real-world problems with clean, maintainable, and high-performance solutions.`

	AboutMe = `With experience spanning from NLP research with Whisper and LoRA to IoT
	automation with Firebase and embedded systems, I'm passionate about bridging the gap
	between hardware and software to create tech that truly matters.`

	ContactBlurb = `Have a project in mind or want to collaborate? Feel free to reach
	out. I'm always open to discussing new opportunities.`

	GitHubProfile = "https://github.com/chamithsandeepa"
)

// SkillGroup is one row of the skills section.
type SkillGroup struct {
	Category string
	Skills   []string
}

var Skills = []SkillGroup{
	{"Backend", []string{"Spring Boot", "MongoDB", "API Development (REST)"}},
	{"AI / ML", []string{"Python (ML/AI)", "PyTorch / TensorFlow", "HuggingFace Transformers", "LLM Fine-tuning (LoRA/PEFT)"}},
	{"IoT", []string{"Raspberry Pi / ESP32", "Computer Vision for IoT", "RFID / Face Recognition"}},
	{"Frontend", []string{"HTML/CSS", "JavaScript", "React", "Tailwind CSS"}},
	{"Tools", []string{"Git/GitHub", "VS Code", "Figma", "Docker"}},
}

// Job is one entry in the work history section.
type Job struct {
	Title     string
	Company   string
	Start     string
	End       string
	Logo      string
	Highlight []string
}

var Experience = []Job{
	{
		Title:   "Presentation Expert",
		Company: "Target",
		Start:   "Aug 2023",
		End:     "Present",
		Logo:    "/images/TargetLogo.jpg",
		Highlight: []string{
			"Executed over 300 merchandising transitions on tight timelines by organizing team workflows and adapting quickly to changing priorities",
			"Boosted operational efficiency by managing backroom inventory processes and streamlining communication between floor and logistics teams",
			"Enhanced pricing and signage accuracy across departments by standardizing daily checks and collaborating cross-functionally",
		},
	},
	{
		Title:   "Manager",
		Company: "Jasons Catered Events",
		Start:   "Aug 2016",
		End:     "Present",
		Logo:    "/images/jasonsCateringLogo.png",
		Highlight: []string{
			"Improved client satisfaction by coordinating customized menus and ensuring all dietary requirements were accurately met",
			"Supported event technology by troubleshooting AV equipment and managing digital order tracking systems, reducing technical delays and improving communication",
			"Maintained supply inventory and coordinated timely delivery between venues, optimizing resource allocation and minimizing downtime.",
		},
	},
}
