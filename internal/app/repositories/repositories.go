package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles all repository instances
type Repositories struct {
	CourseRepository *CourseRepository
	UserRepository   *UserRepository
}

// NewRepositories creates all repositories sharing one pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository: NewCourseRepository(db),
		UserRepository:   NewUserRepository(db),
	}
}
