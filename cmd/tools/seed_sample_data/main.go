// Command seed_sample_data populates the database with sample candidates
// and screening records for exercising the query endpoints.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jonathan/resume-screener/internal/db"
	"github.com/jonathan/resume-screener/internal/types"
)

type sampleJob struct {
	Title        string
	Description  string
	TargetScores []float64
}

func f(v float64) *float64 { return &v }

var sampleCandidates = []types.CandidateProfile{
	{
		Name:     "Alice Johnson",
		Email:    "alice.johnson@email.com",
		Phone:    "+1-555-0101",
		Location: "San Francisco, CA",
		Skills:   []string{"Python", "FastAPI", "Django", "PostgreSQL", "Docker", "AWS", "React"},
		Experience: []types.Experience{
			{
				Role:             "Senior Software Engineer",
				Company:          "Tech Giants Inc",
				Duration:         "Jan 2020 - Present",
				Years:            f(5),
				Responsibilities: []string{"Led backend team", "Designed microservices", "Mentored junior developers"},
			},
			{
				Role:             "Software Developer",
				Company:          "StartupXYZ",
				Duration:         "Jun 2018 - Dec 2019",
				Years:            f(1.5),
				Responsibilities: []string{"Built RESTful APIs", "Implemented CI/CD pipelines"},
			},
		},
		Education: []types.Education{
			{Degree: "MS Computer Science", Institution: "Stanford University", Year: "2018", GPA: "3.9"},
		},
		TotalExperienceYears: f(6.5),
		Certifications:       []string{"AWS Certified Developer", "Python Professional Certificate"},
		Summary:              "Experienced software engineer specializing in backend systems and cloud architecture",
	},
	{
		Name:     "Bob Martinez",
		Email:    "bob.martinez@email.com",
		Phone:    "+1-555-0102",
		Location: "Austin, TX",
		Skills:   []string{"Java", "Spring Boot", "Kubernetes", "MongoDB", "Kafka", "Microservices"},
		Experience: []types.Experience{
			{
				Role:             "Backend Developer",
				Company:          "Enterprise Solutions Corp",
				Duration:         "Mar 2021 - Present",
				Years:            f(3),
				Responsibilities: []string{"Developed payment processing systems", "Optimized database queries"},
			},
		},
		Education: []types.Education{
			{Degree: "BS Software Engineering", Institution: "University of Texas", Year: "2020", GPA: "3.5"},
		},
		TotalExperienceYears: f(3),
		Certifications:       []string{"Oracle Java Certified"},
		Summary:              "Backend developer with strong experience in enterprise systems",
	},
	{
		Name:     "Carol Davis",
		Email:    "carol.davis@email.com",
		Phone:    "+1-555-0103",
		Location: "New York, NY",
		Skills:   []string{"Python", "Machine Learning", "TensorFlow", "Pandas", "NumPy", "Scikit-learn"},
		Experience: []types.Experience{
			{
				Role:             "Data Scientist",
				Company:          "AI Innovations",
				Duration:         "Aug 2022 - Present",
				Years:            f(2),
				Responsibilities: []string{"Built ML models", "Analyzed large datasets", "Created data pipelines"},
			},
		},
		Education: []types.Education{
			{Degree: "PhD Machine Learning", Institution: "MIT", Year: "2022", GPA: "4.0"},
		},
		TotalExperienceYears: f(2),
		Certifications:       []string{"TensorFlow Developer Certificate"},
		Summary:              "Data scientist with expertise in machine learning and statistical analysis",
	},
	{
		Name:     "David Chen",
		Email:    "david.chen@email.com",
		Phone:    "+1-555-0104",
		Location: "Seattle, WA",
		Skills:   []string{"JavaScript", "Node.js", "Express", "MongoDB", "GraphQL"},
		Experience: []types.Experience{
			{
				Role:             "Junior Developer",
				Company:          "WebDev Studio",
				Duration:         "Jan 2024 - Present",
				Years:            f(1),
				Responsibilities: []string{"Fixed bugs", "Wrote unit tests", "Maintained documentation"},
			},
		},
		Education: []types.Education{
			{Degree: "BS Computer Science", Institution: "University of Washington", Year: "2023", GPA: "3.2"},
		},
		TotalExperienceYears: f(1),
		Certifications:       []string{},
		Summary:              "Entry-level developer eager to learn and grow in web development",
	},
	{
		Name:     "Emma Wilson",
		Email:    "emma.wilson@email.com",
		Phone:    "+1-555-0105",
		Location: "Boston, MA",
		Skills:   []string{"Python", "FastAPI", "Flask", "REST API", "SQL", "Git", "Docker", "Redis"},
		Experience: []types.Experience{
			{
				Role:             "Full Stack Developer",
				Company:          "Digital Solutions Ltd",
				Duration:         "Apr 2019 - Present",
				Years:            f(5.5),
				Responsibilities: []string{"Developed web applications", "Designed APIs", "Implemented authentication"},
			},
		},
		Education: []types.Education{
			{Degree: "BS Information Technology", Institution: "Boston University", Year: "2019", GPA: "3.7"},
		},
		TotalExperienceYears: f(5.5),
		Certifications:       []string{"Red Hat Certified Engineer"},
		Summary:              "Full-stack developer with strong backend focus and API design skills",
	},
}

var sampleJobs = []sampleJob{
	{
		Title: "Senior Python Developer",
		Description: `Senior Python Developer

We are looking for an experienced Python developer with:
- 5+ years of Python development experience
- Strong knowledge of FastAPI, Django, or Flask
- Experience with RESTful API design
- Database skills (PostgreSQL, MongoDB)
- Docker and containerization
- Bachelor's degree in Computer Science or related field
- Excellent problem-solving skills`,
		TargetScores: []float64{9.2, 6.5, 4.3, 3.1, 8.7},
	},
	{
		Title: "Machine Learning Engineer",
		Description: `Machine Learning Engineer

Looking for ML engineer with:
- 3+ years ML experience
- Strong Python and TensorFlow/PyTorch
- Experience deploying ML models
- Data pipeline experience
- Statistical analysis skills
- Master's or PhD preferred`,
		TargetScores: []float64{5.8, 3.4, 9.5, 2.1, 4.6},
	},
	{
		Title: "Backend Developer",
		Description: `Backend Developer

Requirements:
- 3+ years backend development
- Experience with microservices
- API design and implementation
- Database optimization
- Cloud platforms (AWS/GCP/Azure)
- Strong CS fundamentals`,
		TargetScores: []float64{8.3, 7.5, 4.8, 3.7, 7.9},
	},
	{
		Title: "Data Analyst",
		Description: `Data Analyst

Requirements:
- Strong analytical and problem-solving skills
- Experience with data visualization tools
- SQL and database knowledge
- Python or R for data analysis
- Bachelor's degree required`,
		TargetScores: []float64{6.2, 5.5, 8.9, 2.8, 5.1},
	},
}

// buildMatchScore fabricates a plausible assessment around a target score.
// Scores between 5 and 7 land in the Maybe tier so the dashboard has all
// three actions to display.
func buildMatchScore(score float64, candidateName, jobTitle string) types.MatchScore {
	var action, justification string
	var strengths, concerns []string

	switch {
	case score >= 7.0:
		action = types.ActionShortlist
		justification = fmt.Sprintf("%s is a strong fit for the %s position with relevant experience and skills that align well with requirements.", candidateName, jobTitle)
		strengths = []string{
			"Strong technical skills matching job requirements",
			"Relevant work experience in similar roles",
			"Solid educational background",
			"Professional certifications demonstrate commitment",
			"Proven track record of successful projects",
		}[:3+rand.Intn(3)]
		concerns = []string{
			"Could benefit from more specific domain experience",
			"Minor gaps in some advanced technologies",
		}[:rand.Intn(2)]
	case score >= 5.0:
		action = types.ActionMaybe
		justification = fmt.Sprintf("%s partially matches the %s position; some requirements are met but notable gaps remain.", candidateName, jobTitle)
		strengths = []string{
			"Transferable technical skills",
			"Solid educational background",
			"Relevant adjacent experience",
		}[:1+rand.Intn(3)]
		concerns = []string{
			"Experience falls short of the stated requirement",
			"Missing some core technologies from the job description",
			"Limited hands-on exposure to the target domain",
		}[:1+rand.Intn(3)]
	default:
		action = types.ActionReject
		justification = fmt.Sprintf("%s does not meet the minimum requirements for the %s position based on current qualifications and experience level.", candidateName, jobTitle)
		strengths = []string{
			"Shows basic programming knowledge",
			"Demonstrates willingness to learn",
			"Has foundational technical understanding",
		}[:rand.Intn(3)]
		concerns = []string{
			"Lacks required years of experience for this role",
			"Missing critical technical skills mentioned in job requirements",
			"Limited relevant project experience",
			"Skill set doesn't align with position needs",
			"Experience level below minimum requirements",
		}[:2+rand.Intn(3)]
	}

	return types.MatchScore{
		Score:             score,
		Justification:     justification,
		Strengths:         strengths,
		Concerns:          concerns,
		RecommendedAction: action,
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Generating sample screening data...")

	for _, job := range sampleJobs {
		log.Printf("Processing job: %s", job.Title)

		for i, candidate := range sampleCandidates {
			score := buildMatchScore(job.TargetScores[i], candidate.Name, job.Title)
			filename := strings.ToLower(strings.ReplaceAll(candidate.Name, " ", "_")) + "_resume.pdf"

			result := &types.ScreeningResult{
				Candidate:      candidate,
				MatchScore:     score,
				JobDescription: job.Description,
				ScreenedAt:     time.Now().UTC(),
				ResumeFilename: filename,
			}

			candidateID, err := database.SaveScreeningResult(ctx, result,
				fmt.Sprintf("Sample resume text for %s", candidate.Name))
			if err != nil {
				return fmt.Errorf("failed to save screening for %s: %w", candidate.Name, err)
			}
			log.Printf("  %s: score %.1f/10 - %s (ID: %d)",
				candidate.Name, score.Score, score.RecommendedAction, candidateID)
		}
	}

	stats, err := database.GetDatabaseStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}
	log.Printf("Database statistics: %d candidates, %d screenings (%d shortlisted, %d maybe, %d rejected)",
		stats.TotalCandidates, stats.TotalScreenings, stats.Shortlisted, stats.Maybe, stats.Rejected)

	return nil
}

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
