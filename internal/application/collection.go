package application

import (
	"github.com/dirmaster/dirmaster-backend/internal/application/commands"
	"github.com/dirmaster/dirmaster-backend/internal/application/processors"
	"github.com/dirmaster/dirmaster-backend/internal/application/query"
)

// Handlers bundles every command and query the rest layer dispatches
// to.
type Handlers struct {
	*commands.CreateProject
	*commands.UpdateProject
	*commands.CreateEntry
	*commands.UpdateEntry
	*commands.DeleteEntry
	*commands.ReviewEntry
	*commands.SubmitEntry
	*commands.UploadFile
	*query.GetProject
	*query.GetEntries
	*query.GetEntry
	*query.ListProjects
	*query.ListEntries
	*query.CheckDomain
}

// Processors bundles the outbox event consumers the poller dispatches
// to.
type Processors struct {
	*processors.EntryReceived
	*processors.EntryPublished
}
