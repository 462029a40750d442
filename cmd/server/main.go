package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/clinprep/backend/internal/auth"
	"github.com/clinprep/backend/internal/database"
	"github.com/clinprep/backend/internal/exam"
	"github.com/clinprep/backend/internal/generator"
	"github.com/clinprep/backend/internal/middleware"
	"github.com/clinprep/backend/internal/ontology"
	"github.com/clinprep/backend/internal/profile"
	"github.com/clinprep/backend/internal/questions"
	"github.com/clinprep/backend/internal/recommend"
	"github.com/clinprep/backend/internal/research"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Domain services
	profileManager, err := profile.NewManager(profile.NewStore(db))
	if err != nil {
		log.Fatalf("Failed to load learner profiles: %v", err)
	}

	examManager, err := exam.NewManager(exam.NewStore(db), profileManager)
	if err != nil {
		log.Fatalf("Failed to load exam sessions: %v", err)
	}

	onto := ontology.New()
	tagger := ontology.NewTagger(onto)
	engine := recommend.NewEngine(profileManager, onto)
	questionService := questions.NewService(generator.NewGenerator(), tagger, examManager)

	// Handlers
	authHandler := auth.NewHandler(db, profileManager)
	profileHandler := profile.NewHandler(profileManager)
	examHandler := exam.NewHandler(examManager)
	ontologyHandler := ontology.NewHandler(onto)
	recommendHandler := recommend.NewHandler(engine)
	questionHandler := questions.NewHandler(questionService)
	researchHandler := research.NewHandler(research.NewClient())

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	// Learner profiles
	protected.HandleFunc("/learners", profileHandler.CreateProfile).Methods("POST")
	protected.HandleFunc("/learners/{learnerID}", profileHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/learners/{learnerID}/attempts", profileHandler.RecordAttempt).Methods("POST")
	protected.HandleFunc("/learners/{learnerID}/performance", profileHandler.GetPerformance).Methods("GET")
	protected.HandleFunc("/learners/{learnerID}/skill-gaps", profileHandler.GetSkillGaps).Methods("GET")
	protected.HandleFunc("/learners/{learnerID}/strengths", profileHandler.GetStrengths).Methods("GET")
	protected.HandleFunc("/learners/{learnerID}/topic-strengths", profileHandler.GetTopicStrengths).Methods("GET")
	protected.HandleFunc("/learners/{learnerID}/topic-weaknesses", profileHandler.GetTopicWeaknesses).Methods("GET")
	protected.HandleFunc("/learners/{learnerID}/radar", profileHandler.GetRadarChart).Methods("GET")
	protected.HandleFunc("/learners/{learnerID}/exams", profileHandler.GetExamHistory).Methods("GET")

	// Exam sessions
	protected.HandleFunc("/exams", examHandler.CreateSession).Methods("POST")
	protected.HandleFunc("/exams/{sessionID}", examHandler.GetSession).Methods("GET")
	protected.HandleFunc("/exams/{sessionID}/questions", questionHandler.GenerateForSession).Methods("POST")
	protected.HandleFunc("/exams/{sessionID}/submit", examHandler.SubmitAnswer).Methods("POST")
	protected.HandleFunc("/exams/{sessionID}/complete", examHandler.CompleteSession).Methods("POST")
	protected.HandleFunc("/exams/{sessionID}/abandon", examHandler.AbandonSession).Methods("POST")
	protected.HandleFunc("/exams/{sessionID}/summary", examHandler.GetSummary).Methods("GET")
	protected.HandleFunc("/exams/{sessionID}/next-difficulty", examHandler.GetNextDifficulty).Methods("GET")
	protected.HandleFunc("/learners/{learnerID}/sessions", examHandler.GetLearnerSessions).Methods("GET")

	// Standalone question generation
	protected.HandleFunc("/questions/generate", questionHandler.Generate).Methods("POST")

	// Literature search
	protected.HandleFunc("/research/citations", researchHandler.GetCitations).Methods("GET")

	// Recommendations
	protected.HandleFunc("/learners/{learnerID}/recommendations", recommendHandler.GetRecommendedTopics).Methods("GET")
	protected.HandleFunc("/learners/{learnerID}/recommendations/full", recommendHandler.GetComprehensive).Methods("GET")
	protected.HandleFunc("/learners/{learnerID}/weak-skills", recommendHandler.GetWeakSkills).Methods("GET")
	protected.HandleFunc("/learners/{learnerID}/weak-topics", recommendHandler.GetWeakTopics).Methods("GET")
	protected.HandleFunc("/learners/{learnerID}/strong-topics", recommendHandler.GetStrongTopics).Methods("GET")
	protected.HandleFunc("/learners/{learnerID}/focused-exam", recommendHandler.GetFocusedExam).Methods("POST")
	protected.HandleFunc("/learners/{learnerID}/milestone", recommendHandler.GetMilestone).Methods("GET")

	// Ontology
	protected.HandleFunc("/skills", ontologyHandler.GetSkills).Methods("GET")
	protected.HandleFunc("/skills/tree", ontologyHandler.GetSkillTree).Methods("GET")
	protected.HandleFunc("/skills/{skillID}", ontologyHandler.GetSkill).Methods("GET")
	protected.HandleFunc("/competencies", ontologyHandler.GetCompetencies).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
