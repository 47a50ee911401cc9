package model

type LessonKind string

const (
	LessonVideo    LessonKind = "video"
	LessonQuiz     LessonKind = "quiz"
	LessonPractice LessonKind = "practice"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Subject     string         `gorm:"size:100" json:"subject"`
	GradeBand   string         `gorm:"size:20" json:"gradeBand"`
	Order       int            `gorm:"default:0" json:"order"`
	IsPublished bool           `gorm:"default:false" json:"isPublished"`
	Modules     []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model CourseModule
type CourseModule struct {
	BaseModel
	CourseID    uint     `gorm:"index;type:bigint unsigned" json:"courseId"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Order       int      `gorm:"default:0" json:"order"`
	Lessons     []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID    uint       `gorm:"index;type:bigint unsigned" json:"moduleId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Kind        LessonKind `gorm:"type:enum('video','quiz','practice');default:'video'" json:"kind"`
	Order       int        `gorm:"default:0" json:"order"`
	VideoURL    string     `gorm:"size:512" json:"videoUrl,omitempty"`
	Description string     `gorm:"type:text" json:"description"`
}

func (Lesson) TableName() string {
	return "lessons"
}
