package database

import (
	"fmt"
	"log"

	"tutoria_backend/internal/config"
	"tutoria_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.Diagnostic{},
		&model.DiagnosticQuestion{},
		&model.DiagnosticOption{},
		&model.DiagnosticAttempt{},
		&model.RecommendationRule{},
		&model.CompletionRecord{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedRecommendationRules(db)
	seedDefaultDiagnostic(db)

	return db, nil
}

// seedRecommendationRules installs the shared default rule table
// (diagnostic_id 0) used by every diagnostic that does not carry its
// own. Order matters: rules are evaluated top to bottom.
func seedRecommendationRules(db *gorm.DB) {
	var count int64
	db.Model(&model.RecommendationRule{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.RecommendationRule{
		{
			Kind:     model.RuleWeakness,
			Concepts: []string{"Ecuaciones lineales", "Ecuaciones cuadráticas"},
			Message:  "Practica la resolución de ecuaciones paso a paso antes de avanzar.",
			Order:    1,
			Enabled:  true,
		},
		{
			Kind:     model.RuleWeakness,
			Concepts: []string{"Funciones polinómicas", "Funciones cuadráticas"},
			Message:  "Repasa el estudio de funciones: dominio, gráficas y raíces.",
			Order:    2,
			Enabled:  true,
		},
		{
			Kind:     model.RuleWeakness,
			Concepts: []string{"Geometría"},
			Message:  "Refuerza los fundamentos de geometría con las lecciones en video.",
			Order:    3,
			Enabled:  true,
		},
		{
			Kind:       model.RuleSkipped,
			MinSkipped: 2,
			Message:    "Saltaste varias preguntas; intenta las lecciones de confianza antes de repetir el diagnóstico.",
			Order:      4,
			Enabled:    true,
		},
		{
			Kind:    model.RuleFallback,
			Message: "Continúa con tu plan de estudio normal.",
			Order:   5,
			Enabled: true,
		},
	}

	for i := range defaults {
		db.Create(&defaults[i])
	}
}

// seedDefaultDiagnostic installs a small published math battery so a
// fresh install has something to serve.
func seedDefaultDiagnostic(db *gorm.DB) {
	var count int64
	db.Model(&model.Diagnostic{}).Count(&count)
	if count > 0 {
		return
	}

	diag := &model.Diagnostic{
		Title:       "Diagnóstico de matemáticas",
		Description: "Evaluación inicial de álgebra y geometría",
		Subject:     "Matemáticas",
		GradeBand:   "secundaria",
		IsPublished: true,
	}
	if err := db.Create(diag).Error; err != nil {
		return
	}

	questions := []model.DiagnosticQuestion{
		{
			DiagnosticID: diag.ID,
			Prompt:       "Resuelve: 2x + 3 = 11",
			Concept:      "Ecuaciones lineales",
			Difficulty:   model.DifficultyEasy,
			Order:        1,
			Options: []model.DiagnosticOption{
				{Text: "x = 3", Explanation: "Revisa el despeje: 2x = 8."},
				{Text: "x = 4", Correct: true, Explanation: "2x = 8, por lo tanto x = 4."},
				{Text: "x = 7"},
			},
		},
		{
			DiagnosticID: diag.ID,
			Prompt:       "¿Cuáles son las raíces de x² - 5x + 6 = 0?",
			Concept:      "Ecuaciones cuadráticas",
			Difficulty:   model.DifficultyMedium,
			Order:        2,
			Options: []model.DiagnosticOption{
				{Text: "x = 2 y x = 3", Correct: true, Explanation: "(x-2)(x-3) = 0."},
				{Text: "x = 1 y x = 6"},
				{Text: "x = -2 y x = -3"},
			},
		},
		{
			DiagnosticID: diag.ID,
			Prompt:       "¿Cuál es el vértice de f(x) = (x - 1)² + 2?",
			Concept:      "Funciones cuadráticas",
			Difficulty:   model.DifficultyMedium,
			Order:        3,
			Options: []model.DiagnosticOption{
				{Text: "(1, 2)", Correct: true, Explanation: "La forma canónica muestra el vértice directamente."},
				{Text: "(-1, 2)"},
				{Text: "(2, 1)"},
			},
		},
		{
			DiagnosticID: diag.ID,
			Prompt:       "El área de un triángulo con base 6 y altura 4 es:",
			Concept:      "Geometría",
			Difficulty:   model.DifficultyEasy,
			Order:        4,
			Options: []model.DiagnosticOption{
				{Text: "24"},
				{Text: "12", Correct: true, Explanation: "Área = base × altura / 2."},
				{Text: "10"},
			},
		},
	}

	for i := range questions {
		db.Create(&questions[i])
	}
}
