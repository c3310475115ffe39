package catalog

var users = []User{
	{
		ID:             1,
		Username:       "user",
		Role:           RoleClient,
		Name:           "Brian",
		ProfilePicture: "https://picsum.photos/seed/brian/200",
		CurrentJob:     "IT Support",
		DesiredJob:     "AI Engineer",
		CurrentSkills:  []string{"Software development", "Troubleshooting", "Technical Writing"},
		DesiredSkills:  []string{"AI Prompting", "AI/ML Fundamentals", "AI Integration"},
		DesiredSalary:  &Range{Min: 50000000, Max: 100000000},
	},
	{
		ID:             2,
		Username:       "hrd",
		Role:           RoleHRD,
		Name:           "Nathanael",
		Company:        "PT Maju Jaya",
		ProfilePicture: "https://picsum.photos/seed/nathanael/200",
		RequiredSkills: []string{"AI Prompting", "AI/ML Fundamentals", "AI Integration"},
		Budget:         &Range{Min: 40000000, Max: 100000000},
	},
	{
		ID:             3,
		Username:       "hrd_premium",
		Role:           RoleHRDPremium,
		Name:           "Samantha",
		Company:        "Tech Innovations Inc.",
		ProfilePicture: "https://picsum.photos/seed/samantha/200",
		RequiredSkills: []string{"React", "TypeScript", "Node.js", "CI/CD"},
		Budget:         &Range{Min: 60000000, Max: 120000000},
	},
	{
		ID:             4,
		Username:       "alice",
		Role:           RoleClient,
		Name:           "Alice",
		ProfilePicture: "https://picsum.photos/seed/alice/200",
		CurrentJob:     "Data Analyst",
		DesiredJob:     "AI Engineer",
		CurrentSkills:  []string{"SQL", "Tableau", "Python"},
		DesiredSkills:  []string{"AI Integration", "TensorFlow", "Cloud Computing"},
		DesiredSalary:  &Range{Min: 60000000, Max: 90000000},
	},
	{
		ID:             5,
		Username:       "charlie",
		Role:           RoleClient,
		Name:           "Charlie",
		ProfilePicture: "https://picsum.photos/seed/charlie/200",
		CurrentJob:     "Web Developer",
		DesiredJob:     "AI Engineer",
		CurrentSkills:  []string{"JavaScript", "HTML/CSS", "React"},
		DesiredSkills:  []string{"AI/ML Fundamentals", "Python", "API Design"},
		DesiredSalary:  &Range{Min: 55000000, Max: 85000000},
	},
}

var jobs = []Job{
	{
		ID:          1,
		CompanyName: "PT Cloud Computers Indonesia",
		CompanyLogo: "https://picsum.photos/seed/cloudcomp/100",
		Title:       "IT Support",
		Description: []string{"Mengelola dan maintenance computer perusahaan", "Upgrade hardware computer", "Backup server perusahaan"},
		Salary:      9000000,
		Location:    "Surabaya",
		PostedBy:    2,
	},
	{
		ID:          2,
		CompanyName: "Tech Innovations Inc.",
		CompanyLogo: "https://picsum.photos/seed/techinc/100",
		Title:       "Frontend Developer",
		Description: []string{"Develop new user-facing features", "Build reusable code and libraries for future use", "Ensure the technical feasibility of UI/UX designs"},
		Salary:      15000000,
		Location:    "Jakarta",
		PostedBy:    3,
	},
	{
		ID:          3,
		CompanyName: "Astra International",
		CompanyLogo: "https://picsum.photos/seed/astra/100",
		Title:       "Management Trainee",
		Description: []string{"Participate in a fast-track leadership development program", "Rotate through various departments", "Lead strategic projects"},
		Salary:      12000000,
		Location:    "Jakarta",
		PostedBy:    2,
	},
	{
		ID:          4,
		CompanyName: "PERTAMINA",
		CompanyLogo: "https://picsum.photos/seed/pertamina/100",
		Title:       "Petroleum Engineer",
		Description: []string{"Design and develop methods for extracting oil and gas", "Ensure compliance with environmental regulations", "Analyze geological data"},
		Salary:      25000000,
		Location:    "Balikpapan",
		PostedBy:    3,
	},
	{
		ID:          5,
		CompanyName: "Bank Central Asia (BCA)",
		CompanyLogo: "https://picsum.photos/seed/bca/100",
		Title:       "Data Scientist",
		Description: []string{"Analyze large amounts of complex raw data", "Build predictive models and machine-learning algorithms", "Present information using data visualization techniques"},
		Salary:      20000000,
		Location:    "Jakarta",
		PostedBy:    2,
	},
}

var certifications = []Certification{
	{ID: 1, Title: "COMPTIA Security+", Description: "Sertifikasi Tata Kelola keamanan computer dan sistem.", Price: 3000000, Thumbnail: "https://picsum.photos/seed/comptia/300/200"},
	{ID: 2, Title: "Certified Cloud Practitioner", Description: "Foundational, high-level understanding of AWS Cloud.", Price: 1500000, Thumbnail: "https://picsum.photos/seed/aws/300/200"},
	{ID: 3, Title: "Professional Scrum Master I", Description: "Demonstrate a fundamental level of Scrum mastery.", Price: 2500000, Thumbnail: "https://picsum.photos/seed/scrum/300/200"},
	{ID: 4, Title: "Google Project Management", Description: "Gain in-demand skills in project management.", Price: 2000000, Thumbnail: "https://picsum.photos/seed/googlepm/300/200"},
}
