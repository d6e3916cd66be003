package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Project
type Project struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Deadline    string    `db:"deadline" json:"deadline"`
	Skills      string    `db:"skills" json:"skills"`
	Budget      float64   `db:"budget" json:"budget"`
	CompanyName string    `db:"company_name" json:"companyName"`
	Progress    int       `db:"progress" json:"progress"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

const projectColumns = `id, name, description, deadline::text AS deadline, skills, budget, company_name, progress, created_at`

func (s *Storage) CreateProject(ctx context.Context, p *Project) error {
	query := `
        INSERT INTO project (name, description, deadline, skills, budget, company_name)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, progress, created_at`
	return s.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Deadline, p.Skills, p.Budget, p.CompanyName).
		Scan(&p.ID, &p.Progress, &p.CreatedAt)
}

func (s *Storage) GetProject(ctx context.Context, id int) (*Project, error) {
	p := &Project{}
	query := `SELECT ` + projectColumns + ` FROM project WHERE id=$1`
	err := s.db.GetContext(ctx, p, query, id)
	return p, err
}

func (s *Storage) GetProjects(ctx context.Context, companyName string) ([]Project, error) {
	projects := []Project{}
	if companyName != "" {
		query := `SELECT ` + projectColumns + ` FROM project WHERE company_name=$1 ORDER BY id ASC`
		err := s.db.SelectContext(ctx, &projects, query, companyName)
		return projects, err
	}
	query := `SELECT ` + projectColumns + ` FROM project ORDER BY id ASC`
	err := s.db.SelectContext(ctx, &projects, query)
	return projects, err
}

// UpdateProjectProgress returns false when no project has the given id.
func (s *Storage) UpdateProjectProgress(ctx context.Context, id int, progress int) (bool, error) {
	query := `UPDATE project SET progress=$1 WHERE id=$2`
	res, err := s.db.ExecContext(ctx, query, progress, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// Application
type Application struct {
	ID               int       `db:"id" json:"id"`
	ProjectID        int       `db:"project_id" json:"projectId"`
	FreelancerName   string    `db:"freelancer_name" json:"freelancerName"`
	FreelancerEmail  string    `db:"freelancer_email" json:"freelancerEmail"`
	FreelancerPhone  string    `db:"freelancer_phone" json:"freelancerPhone"`
	CVURL            string    `db:"cv_url" json:"cvUrl"`
	Skills           string    `db:"skills" json:"skills"`
	MessageToCompany string    `db:"message_to_company" json:"messageToCompany"`
	Status           string    `db:"status" json:"status"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// AppliedProject is the applications-joined-with-project row returned to a freelancer.
type AppliedProject struct {
	Project
	Status string `db:"status" json:"status"`
}

func (s *Storage) CreateApplication(ctx context.Context, a *Application) error {
	query := `
        INSERT INTO applications
            (project_id, freelancer_name, freelancer_email, freelancer_phone, cv_url, skills, message_to_company, status)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, 'awaiting')
        RETURNING id, status, created_at`
	return s.db.QueryRowContext(ctx, query,
		a.ProjectID, a.FreelancerName, a.FreelancerEmail, a.FreelancerPhone,
		a.CVURL, a.Skills, a.MessageToCompany).
		Scan(&a.ID, &a.Status, &a.CreatedAt)
}

func (s *Storage) GetApplicationsForFreelancer(ctx context.Context, freelancerName string) ([]AppliedProject, error) {
	query := `
        SELECT p.id, p.name, p.description, p.deadline::text AS deadline, p.skills,
               p.budget, p.company_name, p.progress, p.created_at, a.status
        FROM applications a
        JOIN project p ON a.project_id = p.id
        WHERE a.freelancer_name = $1
        ORDER BY a.created_at DESC`
	applied := []AppliedProject{}
	err := s.db.SelectContext(ctx, &applied, query, freelancerName)
	return applied, err
}

func (s *Storage) GetApplicantsForProject(ctx context.Context, projectID int) ([]Application, error) {
	query := `
        SELECT id, project_id, freelancer_name, freelancer_email, freelancer_phone,
               cv_url, skills, message_to_company, status, created_at
        FROM applications
        WHERE project_id = $1
        ORDER BY created_at DESC`
	applications := []Application{}
	err := s.db.SelectContext(ctx, &applications, query, projectID)
	return applications, err
}

// ConfirmApplication sets status to confirmed unconditionally, so a repeat
// call on an already confirmed application is a no-op.
func (s *Storage) ConfirmApplication(ctx context.Context, id int) error {
	query := `UPDATE applications SET status='confirmed' WHERE id=$1`
	_, err := s.db.ExecContext(ctx, query, id)
	return err
}

// Task
type Task struct {
	ID          int       `db:"id" json:"id"`
	ProjectID   int       `db:"project_id" json:"projectId"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

func (s *Storage) CreateTask(ctx context.Context, t *Task) error {
	query := `
        INSERT INTO tasks (project_id, name, description, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query, t.ProjectID, t.Name, t.Description, t.Status).
		Scan(&t.ID, &t.CreatedAt)
}

func (s *Storage) GetTasksForProject(ctx context.Context, projectID int) ([]Task, error) {
	query := `SELECT * FROM tasks WHERE project_id=$1 ORDER BY id ASC`
	tasks := []Task{}
	err := s.db.SelectContext(ctx, &tasks, query, projectID)
	return tasks, err
}

func (s *Storage) UpdateTaskStatus(ctx context.Context, id int, status string) (bool, error) {
	query := `UPDATE tasks SET status=$1 WHERE id=$2`
	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *Storage) DeleteTask(ctx context.Context, id int) (bool, error) {
	query := `DELETE FROM tasks WHERE id=$1`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// InboxMessage
type InboxMessage struct {
	ID             int       `db:"id" json:"id"`
	CompanyName    string    `db:"company_name" json:"companyName"`
	FreelancerName string    `db:"freelancer_name" json:"freelancerName"`
	ProjectID      int       `db:"project_id" json:"projectId"`
	Message        string    `db:"message" json:"message"`
	IsRead         bool      `db:"is_read" json:"isRead"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

func (s *Storage) CreateInboxMessage(ctx context.Context, m *InboxMessage) error {
	query := `
        INSERT INTO inbox (company_name, freelancer_name, project_id, message)
        VALUES ($1, $2, $3, $4)
        RETURNING id, is_read, created_at`
	return s.db.QueryRowContext(ctx, query,
		m.CompanyName, m.FreelancerName, m.ProjectID, m.Message).
		Scan(&m.ID, &m.IsRead, &m.CreatedAt)
}

func (s *Storage) GetInboxMessages(ctx context.Context, companyName string) ([]InboxMessage, error) {
	query := `
        SELECT * FROM inbox
        WHERE company_name = $1
        ORDER BY created_at DESC`
	messages := []InboxMessage{}
	err := s.db.SelectContext(ctx, &messages, query, companyName)
	return messages, err
}

func (s *Storage) MarkInboxMessageRead(ctx context.Context, id int) (bool, error) {
	query := `UPDATE inbox SET is_read=true WHERE id=$1`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
