package catalog

const placeholderImage = "/placeholder.svg?height=200&width=400"

// builtin is the shipped course catalog.
var builtin = []Course{
	{
		ID:          1,
		Title:       "Introduction to Web Development",
		Description: "Learn the fundamentals of HTML, CSS, and JavaScript to build modern websites.",
		Category:    "Web Development",
		Level:       "Beginner",
		Students:    1234,
		Lessons:     24,
		Rating:      4.7,
		Price:       49.99,
		Duration:    "18 hours",
		Instructor:  "John Smith",
	},
	{
		ID:          2,
		Title:       "Advanced React Patterns",
		Description: "Master advanced React concepts including hooks, context, and performance optimization.",
		Category:    "Frontend",
		Level:       "Advanced",
		Students:    856,
		Lessons:     18,
		Price:       79.99,
		Duration:    "15 hours",
		Instructor:  "Sarah Johnson",
	},
	{
		ID:          3,
		Title:       "Full-Stack Development with Next.js",
		Description: "Build complete web applications with Next.js, from frontend to backend.",
		Category:    "Full-Stack",
		Level:       "Intermediate",
		Students:    642,
		Lessons:     32,
		Price:       89.99,
		Duration:    "24 hours",
		Instructor:  "Michael Chen",
	},
	{
		ID:          4,
		Title:       "Node.js Backend Development",
		Description: "Learn to build scalable backend services with Node.js, Express, and MongoDB.",
		Category:    "Backend",
		Level:       "Intermediate",
		Students:    789,
		Lessons:     28,
		Price:       69.99,
		Duration:    "20 hours",
		Instructor:  "David Wilson",
	},
	{
		ID:          5,
		Title:       "UI/UX Design Fundamentals",
		Description: "Master the principles of user interface and experience design for digital products.",
		Category:    "Design",
		Level:       "Beginner",
		Students:    1023,
		Lessons:     20,
		Price:       59.99,
		Duration:    "16 hours",
		Instructor:  "Emily Rodriguez",
	},
	{
		ID:          6,
		Title:       "Mobile App Development with React",
		Description: "Build cross-platform mobile applications using React Native and JavaScript.",
		Category:    "Mobile",
		Level:       "Intermediate",
		Students:    567,
		Lessons:     26,
		Price:       74.99,
		Duration:    "22 hours",
		Instructor:  "Alex Thompson",
	},
	{
		ID:          7,
		Title:       "Python for Data Science",
		Description: "Learn Python programming for data analysis, visualization, and machine learning.",
		Category:    "Data Science",
		Level:       "Beginner",
		Students:    1456,
		Lessons:     30,
		Price:       84.99,
		Duration:    "28 hours",
		Instructor:  "Lisa Park",
	},
	{
		ID:          8,
		Title:       "Advanced JavaScript Concepts",
		Description: "Deep dive into advanced JavaScript concepts like closures, prototypes, and async patterns.",
		Category:    "Frontend",
		Level:       "Advanced",
		Students:    723,
		Lessons:     22,
		Price:       69.99,
		Duration:    "18 hours",
		Instructor:  "Robert Martinez",
	},
	{
		ID:          9,
		Title:       "GraphQL API Development",
		Description: "Learn to build efficient APIs with GraphQL, Apollo, and Node.js.",
		Category:    "Backend",
		Level:       "Intermediate",
		Students:    512,
		Lessons:     24,
		Price:       79.99,
		Duration:    "20 hours",
		Instructor:  "Jennifer Lee",
	},
}
