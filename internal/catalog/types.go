package catalog

import "github.com/blockedby/starred-jobs/internal/models"

// externalJob is a job as the catalog serves it.
type externalJob struct {
	ID          int    `json:"id"`
	JobTitle    string `json:"job_title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

type externalPagination struct {
	CurrentPage int `json:"currentPage"`
	FirstPage   int `json:"firstPage"`
	LastPage    int `json:"lastPage"`
}

type externalJobsList struct {
	Pagination externalPagination `json:"pagination"`
	Data       []externalJob      `json:"data"`
}

type searchRequest struct {
	JobTitle string `json:"jobTitle"`
}

type searchResponse struct {
	SearchQuery struct {
		JobTitle string `json:"jobTitle"`
	} `json:"searchQuery"`
	JobIDs []int `json:"jobIds"`
}

// JobsPage is one page of the catalog feed.
type JobsPage struct {
	Jobs       []models.Job      `json:"jobs"`
	Pagination models.Pagination `json:"pagination"`
}

func (e externalJob) toJob() models.Job {
	return models.Job{
		ID:          e.ID,
		Title:       e.JobTitle,
		Company:     e.Company,
		Description: e.Description,
	}
}

// toPage converts a list response. The catalog's lastPage is zero-based, so
// the page count is lastPage+1.
func (l externalJobsList) toPage() *JobsPage {
	jobs := make([]models.Job, 0, len(l.Data))
	for _, j := range l.Data {
		jobs = append(jobs, j.toJob())
	}
	return &JobsPage{
		Jobs: jobs,
		Pagination: models.Pagination{
			CurrentPage: l.Pagination.CurrentPage,
			TotalPages:  l.Pagination.LastPage + 1,
		},
	}
}
