package recommend

import "github.com/edusense/edusense/internal/roster"

var catalogue = map[roster.Subject]Resources{
	roster.Math: {
		Websites: []Website{
			{"Khan Academy", "https://www.khanacademy.org/math", "Comprehensive lessons, practice exercises, and quizzes for all math levels."},
			{"Brilliant.org", "https://brilliant.org/courses/math-foundations/", "Interactive problem-solving to build quantitative and mathematical intuition."},
		},
		Videos: []Video{
			{"3Blue1Brown: Essence of Algebra", "https://www.youtube.com/embed/videoseries?list=PLZHQObOWTQDPD3MizzM2xVFitgF8hE_ab"},
			{"The Organic Chemistry Tutor: Algebra Basics", "https://www.youtube.com/embed/NybHckSEQBI"},
		},
		Reading: []Reading{
			{"OpenStax: Algebra and Trigonometry", "A free, peer-reviewed online textbook covering core concepts."},
		},
	},
	roster.Science: {
		Websites: []Website{
			{"PhET Interactive Simulations", "https://phet.colorado.edu/", "Fun, free, interactive, research-based science and mathematics simulations."},
			{"NASA Science", "https://science.nasa.gov/", "Explore the latest news, images, and discoveries from NASA's science missions."},
		},
		Videos: []Video{
			{"CrashCourse Physics", "https://www.youtube.com/embed/videoseries?list=PL8dPuuaLjXtN0ge7yDk_UA0ldZJdhwkoV"},
			{"Kurzgesagt – In a Nutshell", "https://www.youtube.com/embed/0fKBhvDjuy0"},
		},
		Reading: []Reading{
			{"National Geographic Science", "In-depth articles on everything from space exploration to animal behavior."},
		},
	},
	roster.English: {
		Websites: []Website{
			{"Purdue Online Writing Lab (OWL)", "https://owl.purdue.edu/", "A comprehensive resource for writing, grammar, and citation style guides."},
			{"Grammarly Blog", "https://www.grammarly.com/blog/", "Tips and articles on grammar, spelling, punctuation, and effective writing."},
		},
		Videos: []Video{
			{"CrashCourse Literature", "https://www.youtube.com/embed/videoseries?list=PL8dPuuaLjXtOeEc9_iFq5v9-e_z2deA4-"},
			{"TED-Ed: Riddles", "https://www.youtube.com/embed/videoseries?list=PLJicmE8fK0Ei_6i2gL3r11S-n5x_s_4_i"},
		},
		Reading: []Reading{
			{"Project Gutenberg", "A library of over 60,000 free eBooks, including many classic literature titles."},
		},
	},
	roster.History: {
		Websites: []Website{
			{"History.com", "https://www.history.com/", "Watch full episodes of your favorite HISTORY shows and read articles on historical events."},
			{"World History Encyclopedia", "https://www.worldhistory.org/", "Peer-reviewed articles, maps, and timelines covering all periods of world history."},
		},
		Videos: []Video{
			{"CrashCourse World History", "https://www.youtube.com/embed/videoseries?list=PLBDA2E52FB1EF80C9"},
			{"OverSimplified", "https://www.youtube.com/embed/2N_g5jTT2_A"},
		},
		Reading: []Reading{
			{"The Gilder Lehrman Institute of American History", "Primary sources, essays, and multimedia on American history."},
		},
	},
	roster.Art: {
		Websites: []Website{
			{"Google Arts & Culture", "https://artsandculture.google.com/", "Explore high-resolution images and stories from cultural institutions around the world."},
			{"Artcyclopedia", "http://www.artcyclopedia.com/", "A comprehensive index of online museum-quality art."},
		},
		Videos: []Video{
			{"The Art Assignment (PBS)", "https://www.youtube.com/embed/videoseries?list=PL_w_qxa-x-4Vb950a3q2b-c8g5a4-C_4"},
			{"Tate: How to Paint Like...", "https://www.youtube.com/embed/videoseries?list=PLvAS0-niOb-0o0Gbo51sPLV9G0aO3uK7m"},
		},
		Reading: []Reading{
			{"The Metropolitan Museum of Art's Heilbrunn Timeline of Art History", "Thematic essays, chronologies, and works of art from the Met's collection."},
		},
	},
}

// quickLinks is the single primary link per core subject.
var quickLinks = map[roster.Subject]string{
	roster.Math:    "https://www.khanacademy.org/math",
	roster.Science: "https://www.sciencebuddies.org/",
	roster.English: "https://www.grammarly.com/",
}
