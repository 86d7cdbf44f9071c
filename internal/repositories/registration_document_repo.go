package repositories

import (
	"context"

	"bizboost/internal/models"

	"github.com/google/uuid"
)

type RegistrationDocumentRepository interface {
	Create(ctx context.Context, document *models.RegistrationDocument) error
	ListByRegistrationID(ctx context.Context, registrationID uuid.UUID) ([]*models.RegistrationDocument, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type registrationDocumentRepo struct {
	db DB
}

func NewRegistrationDocumentRepo(db DB) RegistrationDocumentRepository {
	return &registrationDocumentRepo{db: db}
}

func (r *registrationDocumentRepo) Create(ctx context.Context, doc *models.RegistrationDocument) error {
	query := `
		INSERT INTO registration_documents (id, registration_id, document_type, file_name, file_url, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, doc.ID, doc.RegistrationID, doc.DocumentType, doc.FileName, doc.FileURL)
	return err
}

func (r *registrationDocumentRepo) ListByRegistrationID(ctx context.Context, registrationID uuid.UUID) ([]*models.RegistrationDocument, error) {
	query := `
		SELECT id, registration_id, document_type, file_name, file_url, uploaded_at
		FROM registration_documents
		WHERE registration_id = $1
		ORDER BY uploaded_at
	`
	rows, err := r.db.Query(ctx, query, registrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []*models.RegistrationDocument
	for rows.Next() {
		doc := &models.RegistrationDocument{}
		if err := rows.Scan(&doc.ID, &doc.RegistrationID, &doc.DocumentType, &doc.FileName, &doc.FileURL, &doc.UploadedAt); err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}
	return documents, rows.Err()
}

func (r *registrationDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM registration_documents WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
