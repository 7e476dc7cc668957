package projects

// Default returns the built-in project list used when no data file is
// configured. A fresh slice is returned on every call.
func Default() []Entry {
	return []Entry{
		{
			ID:           1,
			Title:        "Personal Blog",
			Description:  "A personal portfolio website to showcase my projects, skills, and experience. Built with HTML, CSS, and JavaScript to provide a clean and responsive user interface.",
			Image:        "/images/blog.png",
			Technologies: []string{"HTML", "CSS", "JavaScript"},
			DemoLink:     "https://portfolio-new-steel-psi.vercel.app/",
			CodeLink:     "https://github.com/chamithsandeepa/Portfolio.git",
		},
		{
			ID:           2,
			Title:        "Fetch Me Home",
			Description:  "A modern pet adoption platform that connects potential pet parents with animals in need. Built with a scalable tech stack, it features user registration, pet listings, search functionality, and admin control with secure data handling.",
			Image:        "/images/FetchMe.png",
			Technologies: []string{"React", "TypeScript", "Tailwind CSS", "MongoDB", "Spring Boot", "AWS"},
			DemoLink:     "https://fetch-me-home-front-end.vercel.app/",
			CodeLink:     "https://github.com/chamithsandeepa/Fetch_Me_Home_FrontEnd.git",
		},
		{
			ID:           3,
			Title:        "Netflix Clone",
			Description:  "A Netflix-inspired full-stack streaming platform built with React.js and Spring Boot, featuring user authentication, video playback, and dynamic content fetched from MongoDB.",
			Image:        "/images/netflix.png",
			Technologies: []string{"React.js", "Spring Boot", "MongoDB"},
			DemoLink:     "https://netflix-clone-frontend-hiup.vercel.app/",
			CodeLink:     "https://github.com/chamithsandeepa/Netflix_Clone_Frontend.git",
		},
		{
			ID:           4,
			Title:        "Real Estate",
			Description:  "A responsive real estate website that allows users to browse, search, and inquire about properties. Built with ReactJS and styled using Tailwind CSS, it also integrates EmailJS for contact form functionality.",
			Image:        "/images/real.png",
			Technologies: []string{"ReactJS", "Tailwind CSS", "EmailJS"},
			DemoLink:     "https://real-estate-frontend-chi.vercel.app/",
			CodeLink:     "https://github.com/chamithsandeepa/Real-Estate-Frontend.git",
		},
		{
			ID:           5,
			Title:        "ToDo App",
			Description:  "A minimal and intuitive ToDo application that helps users manage daily tasks efficiently. Includes features like task creation, completion toggles, and real-time updates with a responsive mobile-friendly design.",
			Image:        "/images/ToDo.png",
			Technologies: []string{"ReactJS", "Tailwind CSS"},
			DemoLink:     "https://to-do-app-psi-eight.vercel.app/",
			CodeLink:     "https://github.com/chamithsandeepa/ToDo-App-.git",
		},
		{
			ID:           6,
			Title:        "Travel Blog",
			Description:  "A web-based travel booking system that allows users to search, book, and manage travel packages with ease.",
			Image:        "/images/travel.png",
			Technologies: []string{"HTML", "CSS", "JavaScript", "PHP", "MySQL"},
			DemoLink:     DemoUnavailable,
			CodeLink:     "https://github.com/chamithsandeepa/Travel_Booking_System.git",
		},
	}
}
