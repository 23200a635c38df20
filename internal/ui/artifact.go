package ui

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/josephgoksu/AgentX/models"
	"github.com/josephgoksu/AgentX/store"
)

// RenderArtifact formats a pipeline artifact for the terminal.
func RenderArtifact(a *models.Artifact) string {
	var sb strings.Builder

	sb.WriteString(StyleHeader.Render(a.Name) + "\n")
	if a.Description != "" {
		sb.WriteString(" " + StyleSubtle.Render(a.Description) + "\n")
	}
	sb.WriteString(" " + StyleSubtle.Render("id "+a.ID) + "\n\n")

	body := a.DocBody
	writeList(&sb, "Goals", body.Goals)
	writeList(&sb, "Functional requirements", body.FunctionalRequirements)
	writeList(&sb, "Non-functional requirements", body.NonFunctionalRequirements)
	writeList(&sb, "Technical requirements", body.TechnicalRequirements)
	for _, role := range body.StakeholderRequirements.Roles() {
		writeList(&sb, "Stakeholders: "+role, body.StakeholderRequirements[role])
	}

	sb.WriteString(StyleSectionTitle.Render("Tasks") + "\n")
	if len(a.Tasks) == 0 {
		sb.WriteString(" " + StyleWarning.Render("no tasks") + "\n\n")
	} else {
		sb.WriteString(TaskTable(a.Tasks).Render() + "\n")
	}

	writeDiagram(&sb, "Use case diagram", a.UseCaseDiagram)
	writeDiagram(&sb, "ER diagram", a.ERDiagram)
	return sb.String()
}

// TaskTable lays out assigned tasks one per row.
func TaskTable(tasks []models.Task) *Table {
	t := &Table{
		Columns: []Column{
			{Title: "#", Right: true},
			{Title: "Task"},
			{Title: "Priority", Max: 10},
			{Title: "Assignee", Max: 24},
			{Title: "Deadline", Max: 16},
		},
		MaxWidth: 48,
	}
	for i, task := range tasks {
		t.AddRow(fmt.Sprintf("%d", i+1), task.Name, task.Priority, task.AssignedTo, task.Deadline.String())
	}
	return t
}

// RunTable lays out recorded runs, newest first as given.
func RunTable(runs []store.Run) *Table {
	t := &Table{
		Columns: []Column{
			{Title: "ID"},
			{Title: "Project", Max: 32},
			{Title: "Status"},
			{Title: "Stage"},
			{Title: "Started"},
			{Title: "Duration", Right: true},
		},
		MaxWidth: 40,
	}
	status := cases.Title(language.English)
	for _, run := range runs {
		t.AddRow(
			TruncateID(run.ID),
			run.ProjectName,
			status.String(string(run.Status)),
			run.FailedStage,
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Duration().Round(time.Second).String(),
		)
	}
	return t
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(StyleSectionTitle.Render(title) + "\n")
	for _, item := range items {
		sb.WriteString("  • " + StyleText.Render(item) + "\n")
	}
	sb.WriteString("\n")
}

func writeDiagram(sb *strings.Builder, title, source string) {
	sb.WriteString(StyleSectionTitle.Render(title) + "\n")
	if source == "" {
		sb.WriteString(" " + StyleSubtle.Render("not available") + "\n\n")
		return
	}
	sb.WriteString(StyleDiagramBox.Render(source) + "\n\n")
}
