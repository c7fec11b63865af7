package postgres

import (
	"context"
	"database/sql"
	"errors"

	"dario.cat/mergo"
	"github.com/jinzhu/copier"
	"github.com/uptrace/bun"

	"github.com/rendetalje/friday/pkg/models"
	"github.com/rendetalje/friday/pkg/store"
)

var _ models.ChatStore = &ChatStoreDAO{}

// ChatStoreDAO persists conversations and their messages.
type ChatStoreDAO struct {
	db *bun.DB
}

func NewChatStoreDAO(db *bun.DB) *ChatStoreDAO {
	return &ChatStoreDAO{db: db}
}

func (dao *ChatStoreDAO) CreateConversation(
	ctx context.Context,
	conversation *models.Conversation,
) (*models.Conversation, error) {
	dbConversation := &ConversationSchema{}
	if err := copier.Copy(dbConversation, conversation); err != nil {
		return nil, store.NewStorageError("failed to copy conversation", err)
	}
	dbConversation.ID = 0

	_, err := dao.db.NewInsert().Model(dbConversation).Returning("*").Exec(ctx)
	if err != nil {
		return nil, store.NewStorageError("failed to create conversation", err)
	}

	created := &models.Conversation{}
	if err := copier.Copy(created, dbConversation); err != nil {
		return nil, store.NewStorageError("failed to copy conversation", err)
	}
	return created, nil
}

func (dao *ChatStoreDAO) GetConversation(
	ctx context.Context,
	conversationID int64,
) (*models.Conversation, error) {
	dbConversation := &ConversationSchema{}
	err := dao.db.NewSelect().
		Model(dbConversation).
		Where("id = ?", conversationID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("conversation")
		}
		return nil, store.NewStorageError("failed to get conversation", err)
	}

	conversation := &models.Conversation{}
	if err := copier.Copy(conversation, dbConversation); err != nil {
		return nil, store.NewStorageError("failed to copy conversation", err)
	}
	return conversation, nil
}

func (dao *ChatStoreDAO) ListConversations(
	ctx context.Context,
	userID int64,
) ([]models.Conversation, error) {
	var dbConversations []ConversationSchema
	err := dao.db.NewSelect().
		Model(&dbConversations).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, store.NewStorageError("failed to list conversations", err)
	}

	conversations := make([]models.Conversation, len(dbConversations))
	for i := range dbConversations {
		if err := copier.Copy(&conversations[i], &dbConversations[i]); err != nil {
			return nil, store.NewStorageError("failed to copy conversation", err)
		}
	}
	return conversations, nil
}

// UpdateConversationMetadata merges the given metadata into the stored
// metadata, overriding existing keys, and returns the updated conversation.
func (dao *ChatStoreDAO) UpdateConversationMetadata(
	ctx context.Context,
	conversationID int64,
	metadata map[string]interface{},
) (*models.Conversation, error) {
	dbConversation := &ConversationSchema{}
	err := dao.db.NewSelect().
		Model(dbConversation).
		Where("id = ?", conversationID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("conversation")
		}
		return nil, store.NewStorageError("failed to get conversation", err)
	}

	dbMetadata := dbConversation.Metadata
	if err := mergo.Merge(&dbMetadata, metadata, mergo.WithOverride); err != nil {
		return nil, store.NewStorageError("failed to merge metadata", err)
	}

	_, err = dao.db.NewUpdate().
		Model(dbConversation).
		Set("metadata = ?", dbMetadata).
		Where("id = ?", conversationID).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, store.NewStorageError("failed to update conversation metadata", err)
	}

	conversation := &models.Conversation{}
	if err := copier.Copy(conversation, dbConversation); err != nil {
		return nil, store.NewStorageError("failed to copy conversation", err)
	}
	return conversation, nil
}

func (dao *ChatStoreDAO) CreateMessage(
	ctx context.Context,
	message *models.Message,
) (*models.Message, error) {
	dbMessage := &MessageSchema{}
	if err := copier.Copy(dbMessage, message); err != nil {
		return nil, store.NewStorageError("failed to copy message", err)
	}
	dbMessage.ID = 0

	_, err := dao.db.NewInsert().Model(dbMessage).Returning("*").Exec(ctx)
	if err != nil {
		return nil, store.NewStorageError("failed to create message", err)
	}

	created := &models.Message{}
	if err := copier.Copy(created, dbMessage); err != nil {
		return nil, store.NewStorageError("failed to copy message", err)
	}
	return created, nil
}

// GetMessages returns the conversation's messages in insertion order.
func (dao *ChatStoreDAO) GetMessages(
	ctx context.Context,
	conversationID int64,
) ([]models.Message, error) {
	var dbMessages []MessageSchema
	err := dao.db.NewSelect().
		Model(&dbMessages).
		Where("conversation_id = ?", conversationID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, store.NewStorageError("failed to get messages", err)
	}

	messages := make([]models.Message, len(dbMessages))
	for i := range dbMessages {
		if err := copier.Copy(&messages[i], &dbMessages[i]); err != nil {
			return nil, store.NewStorageError("failed to copy message", err)
		}
	}
	return messages, nil
}

func (dao *ChatStoreDAO) Close() error {
	return dao.db.Close()
}
