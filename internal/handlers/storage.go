package handlers

import (
	"context"

	"skillmatch/db"
)

type StorageInterface interface {
	CreateProject(ctx context.Context, project *db.Project) error
	GetProject(ctx context.Context, projectID int) (*db.Project, error)
	GetProjects(ctx context.Context, companyName string) ([]db.Project, error)
	UpdateProjectProgress(ctx context.Context, projectID int, progress int) (bool, error)

	CreateApplication(ctx context.Context, application *db.Application) error
	GetApplicationsForFreelancer(ctx context.Context, freelancerName string) ([]db.AppliedProject, error)
	GetApplicantsForProject(ctx context.Context, projectID int) ([]db.Application, error)
	ConfirmApplication(ctx context.Context, applicationID int) error

	CreateTask(ctx context.Context, task *db.Task) error
	GetTasksForProject(ctx context.Context, projectID int) ([]db.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID int, status string) (bool, error)
	DeleteTask(ctx context.Context, taskID int) (bool, error)

	CreateInboxMessage(ctx context.Context, message *db.InboxMessage) error
	GetInboxMessages(ctx context.Context, companyName string) ([]db.InboxMessage, error)
	MarkInboxMessageRead(ctx context.Context, messageID int) (bool, error)
}
