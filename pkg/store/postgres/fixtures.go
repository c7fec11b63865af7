package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dbfixture"
	"github.com/uptrace/bun/extra/bundebug"
	"gopkg.in/yaml.v3"

	"github.com/rendetalje/friday/pkg/models"
)

type Row interface {
	LeadSchema | TaskSchema | ConversationSchema | MessageSchema
}

type FixtureModel[T Row] struct {
	Model string `yaml:"model"`
	Rows  []T    `yaml:"rows"`
}

type Fixtures[T Row] []FixtureModel[T]

var fixtureLeadSources = []string{"manual", "hjemmeside", "email", "flytterengøring"}

var fixtureLeadStatuses = []string{
	models.LeadStatusNew,
	models.LeadStatusContacted,
	models.LeadStatusQualified,
	models.LeadStatusProposal,
	models.LeadStatusWon,
	models.LeadStatusLost,
}

var fixtureTaskTitles = []string{
	"Ring til kunden om tilbud",
	"Send faktura-kladde til godkendelse",
	"Bestil rengøringsmidler",
	"Følg op på flytterengøring",
	"Opdater prislisten",
}

func generateTimeLastNDays(nDays int) time.Time {
	now := time.Now()
	windowStart := now.Add(time.Duration(-nDays) * 24 * time.Hour)
	return gofakeit.DateRange(windowStart, now)
}

// GenerateFixtureData writes YAML fixtures for leads, tasks, conversations
// and messages to outputDir.
func GenerateFixtureData(fixtureCount int, outputDir string) {
	fakerGlobal := gofakeit.NewUnlocked(0)
	gofakeit.SetGlobalFaker(fakerGlobal)

	userIDs := []int64{1, 2, 3}

	leads := make([]LeadSchema, fixtureCount)
	for i := 0; i < fixtureCount; i++ {
		dateCreated := generateTimeLastNDays(14)
		leads[i] = LeadSchema{
			ID:        int64(i + 1),
			CreatedAt: dateCreated,
			UpdatedAt: dateCreated,
			UserID:    userIDs[i%len(userIDs)],
			Name:      gofakeit.Name(),
			Email:     strings.ToLower(gofakeit.Email()),
			Phone:     gofakeit.Phone(),
			Company:   gofakeit.Company(),
			Source:    fixtureLeadSources[gofakeit.Number(0, len(fixtureLeadSources)-1)],
			Score:     gofakeit.Number(0, 100),
			Status:    fixtureLeadStatuses[gofakeit.Number(0, len(fixtureLeadStatuses)-1)],
		}
	}

	tasks := make([]TaskSchema, fixtureCount)
	priorities := []string{
		models.TaskPriorityLow,
		models.TaskPriorityMedium,
		models.TaskPriorityHigh,
		models.TaskPriorityUrgent,
	}
	for i := 0; i < fixtureCount; i++ {
		dateCreated := generateTimeLastNDays(14)
		var dueDate *time.Time
		if gofakeit.Bool() {
			due := dateCreated.Add(time.Duration(gofakeit.Number(1, 14)) * 24 * time.Hour)
			dueDate = &due
		}
		tasks[i] = TaskSchema{
			ID:        int64(i + 1),
			CreatedAt: dateCreated,
			UpdatedAt: dateCreated,
			UserID:    userIDs[i%len(userIDs)],
			Title:     fixtureTaskTitles[gofakeit.Number(0, len(fixtureTaskTitles)-1)],
			DueDate:   dueDate,
			Priority:  priorities[gofakeit.Number(0, len(priorities)-1)],
			Status:    models.TaskStatusTodo,
		}
	}

	var conversations []ConversationSchema
	var messages []MessageSchema
	roles := []string{models.RoleUser, models.RoleAssistant}
	conversationID := int64(0)
	messageID := int64(0)
	for i := 0; i < fixtureCount; i++ {
		conversationID++
		dateCreated := generateTimeLastNDays(14)
		conversations = append(conversations, ConversationSchema{
			ID:        conversationID,
			CreatedAt: dateCreated,
			UpdatedAt: dateCreated,
			UserID:    userIDs[i%len(userIDs)],
			Title:     gofakeit.Sentence(3),
		})

		messageCount := gofakeit.Number(2, 10)
		messageDate := dateCreated
		for j := 0; j < messageCount; j++ {
			messageID++
			messageDate = messageDate.Add(time.Second * time.Duration(gofakeit.Number(5, 120)))
			messages = append(messages, MessageSchema{
				ID:             messageID,
				CreatedAt:      messageDate,
				ConversationID: conversationID,
				Role:           roles[j%2],
				Content:        gofakeit.Paragraph(1, 3, 12, "."),
			})
		}
	}

	if outputDir == "" {
		outputDir = "./"
	} else if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.Mkdir(outputDir, 0755); err != nil {
			fmt.Printf("unable to create %s: %v", outputDir, err)
			return
		}
	}

	writeFixtureToYAML(Fixtures[LeadSchema]{
		{Model: "LeadSchema", Rows: leads},
	}, outputDir, "lead_fixtures.yaml")
	writeFixtureToYAML(Fixtures[TaskSchema]{
		{Model: "TaskSchema", Rows: tasks},
	}, outputDir, "task_fixtures.yaml")
	writeFixtureToYAML(Fixtures[ConversationSchema]{
		{Model: "ConversationSchema", Rows: conversations},
	}, outputDir, "conversation_fixtures.yaml")
	writeFixtureToYAML(Fixtures[MessageSchema]{
		{Model: "MessageSchema", Rows: messages},
	}, outputDir, "message_fixtures.yaml")
}

func writeFixtureToYAML[T Row](fixtures Fixtures[T], outputDir, filename string) {
	data, err := yaml.Marshal(&fixtures)
	if err != nil {
		fmt.Printf("error: %v", err)
		return
	}

	file, err := os.Create(filepath.Join(outputDir, filename))
	if err != nil {
		fmt.Printf("error: %v", err)
		return
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			fmt.Printf("error: %v", err)
			return
		}
	}(file)

	_, err = file.Write(data)
	if err != nil {
		fmt.Printf("error: %v", err)
		return
	}

	fmt.Printf("Fixtures generated successfully in %s!\n", filename)
}

// LoadFixtures drops and recreates the schema, then loads all YAML fixtures
// found at fixturePath. Destructive: only for test databases.
func LoadFixtures(ctx context.Context, db *bun.DB, fixturePath string) error {
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))

	dropSchemaQuery := `DROP SCHEMA public CASCADE;
CREATE SCHEMA public;
GRANT ALL ON SCHEMA public TO postgres;
GRANT ALL ON SCHEMA public TO public;`

	_, err := db.ExecContext(ctx, dropSchemaQuery)
	if err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}

	err = CreateSchema(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	db.RegisterModel(
		(*LeadSchema)(nil),
		(*TaskSchema)(nil),
		(*ConversationSchema)(nil),
		(*MessageSchema)(nil),
	)

	fixture := dbfixture.New(db, dbfixture.WithRecreateTables())

	files, err := os.ReadDir(fixturePath)
	if err != nil {
		return fmt.Errorf("failed to read fixture directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".yaml" {
			continue
		}
		err = fixture.Load(ctx, os.DirFS(fixturePath), file.Name())
		if err != nil {
			return fmt.Errorf("failed to load fixture %s: %w", file.Name(), err)
		}
	}

	return nil
}
