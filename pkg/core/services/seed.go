package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saraya/voluntariado-mayor/pkg/core/model"
)

// SeedStore defines the database operations needed to populate demo data
type SeedStore interface {
	CountUsers(ctx context.Context) (int64, error)
	InsertUser(ctx context.Context, u *model.User) error
	InsertBeneficiary(ctx context.Context, b *model.Beneficiary) error
	InsertRequest(ctx context.Context, r *model.Request) error
	InsertApplication(ctx context.Context, a *model.Application) error
	InsertMessage(ctx context.Context, m *model.Message) error
	AcceptApplicationMatch(ctx context.Context, applicationID, comment string, now time.Time) (*model.MatchResult, error)
}

// SeedResult counts what Seed created.
type SeedResult struct {
	Users         int
	Beneficiaries int
	Requests      int
	Applications  int
	Messages      int
}

// Seed populates an empty database with a small, realistic demo data set:
// two requesters, three volunteers, three beneficiaries, four requests in
// mixed states and a short conversation on the assigned one. Refuses to
// run against a database that already has users.
func Seed(ctx context.Context, store SeedStore, logger *zap.Logger) (*SeedResult, error) {
	count, err := store.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("database already contains %d users, refusing to seed", count)
	}

	now := time.Now().UTC()
	result := &SeedResult{}

	newUser := func(name, email, role, phone, address string) (*model.User, error) {
		u := &model.User{
			ID:        uuid.New().String(),
			Name:      name,
			Email:     email,
			Role:      role,
			Phone:     phone,
			Address:   address,
			Active:    true,
			CreatedAt: now,
		}
		if err := store.InsertUser(ctx, u); err != nil {
			return nil, err
		}
		result.Users++
		return u, nil
	}

	requester1, err := newUser("María González", "maria.gonzalez@example.cl", model.RoleRequester, "+56912345001", "Av. Los Aromos 120, Ñuñoa")
	if err != nil {
		return nil, err
	}
	requester2, err := newUser("Pedro Soto", "pedro.soto@example.cl", model.RoleRequester, "+56912345002", "Calle Las Lilas 45, Maipú")
	if err != nil {
		return nil, err
	}
	volunteer1, err := newUser("Camila Rojas", "camila.rojas@example.cl", model.RoleVolunteer, "+56912345003", "Pasaje El Roble 8, Ñuñoa")
	if err != nil {
		return nil, err
	}
	volunteer2, err := newUser("Javier Muñoz", "javier.munoz@example.cl", model.RoleVolunteer, "+56912345004", "Av. Grecia 2300, Peñalolén")
	if err != nil {
		return nil, err
	}
	if _, err := newUser("Fernanda Díaz", "fernanda.diaz@example.cl", model.RoleVolunteer, "+56912345005", "Calle Uno 77, La Florida"); err != nil {
		return nil, err
	}

	newBeneficiary := func(nationalID, first, last string, birthYear int, address string) (*model.Beneficiary, error) {
		b := &model.Beneficiary{
			ID:               uuid.New().String(),
			NationalID:       nationalID,
			FirstName:        first,
			LastName:         last,
			BirthDate:        time.Date(birthYear, time.March, 15, 0, 0, 0, 0, time.UTC),
			Address:          address,
			Phone:            "+56922334455",
			EmergencyContact: "Familiar de contacto +56933445566",
			Active:           true,
			CreatedAt:        now,
		}
		if err := store.InsertBeneficiary(ctx, b); err != nil {
			return nil, err
		}
		result.Beneficiaries++
		return b, nil
	}

	beneficiary1, err := newBeneficiary("6543210-5", "Rosa", "Fuentes", 1942, "Av. Los Aromos 118, Ñuñoa")
	if err != nil {
		return nil, err
	}
	beneficiary2, err := newBeneficiary("7654321-K", "Luis", "Carrasco", 1950, "Calle Las Lilas 47, Maipú")
	if err != nil {
		return nil, err
	}
	beneficiary3, err := newBeneficiary("8765432-1", "Elena", "Paredes", 1938, "Pasaje Central 12, Maipú")
	if err != nil {
		return nil, err
	}

	newRequest := func(creator *model.User, b *model.Beneficiary, title, description, helpType, priority string, deadlineDays int) (*model.Request, error) {
		r := &model.Request{
			ID:            uuid.New().String(),
			CreatorID:     creator.ID,
			BeneficiaryID: b.ID,
			Title:         title,
			Description:   description,
			HelpType:      helpType,
			Status:        model.RequestPending,
			Priority:      priority,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if deadlineDays > 0 {
			deadline := now.AddDate(0, 0, deadlineDays)
			r.Deadline = &deadline
		}
		if err := store.InsertRequest(ctx, r); err != nil {
			return nil, err
		}
		result.Requests++
		return r, nil
	}

	request1, err := newRequest(requester1, beneficiary1,
		"Compra semanal de alimentos",
		"Rosa necesita ayuda para hacer la compra semanal en la feria del barrio, incluye traslado de bolsas.",
		"Compras", model.PriorityMedium, 7)
	if err != nil {
		return nil, err
	}
	request2, err := newRequest(requester1, beneficiary1,
		"Acompañamiento a control médico",
		"Acompañar a Rosa a su control de presión en el consultorio y ayudarla con el transporte de regreso.",
		"Acompañamiento", model.PriorityHigh, 3)
	if err != nil {
		return nil, err
	}
	if _, err := newRequest(requester2, beneficiary2,
		"Reparación de llave que gotea",
		"Luis tiene una llave goteando en la cocina hace semanas y necesita a alguien con herramientas básicas.",
		"Reparaciones", model.PriorityLow, 0); err != nil {
		return nil, err
	}
	if _, err := newRequest(requester2, beneficiary3,
		"Retiro urgente de medicamentos",
		"Elena quedó sin sus medicamentos para la diabetes y hay que retirarlos hoy en la farmacia del consultorio.",
		"Trámites", model.PriorityUrgent, 1); err != nil {
		return nil, err
	}

	newApplication := func(r *model.Request, v *model.User, motivation string) (*model.Application, error) {
		a := &model.Application{
			ID:          uuid.New().String(),
			RequestID:   r.ID,
			VolunteerID: v.ID,
			Motivation:  motivation,
			Status:      model.ApplicationPending,
			SubmittedAt: now,
		}
		if err := store.InsertApplication(ctx, a); err != nil {
			return nil, err
		}
		result.Applications++
		return a, nil
	}

	accepted, err := newApplication(request1, volunteer1,
		"Vivo a dos cuadras de la feria y puedo acompañar a Rosa todas las semanas sin problema.")
	if err != nil {
		return nil, err
	}
	if _, err := newApplication(request1, volunteer2,
		"Tengo auto disponible los fines de semana y experiencia acompañando a adultos mayores."); err != nil {
		return nil, err
	}
	if _, err := newApplication(request2, volunteer2,
		"Trabajo cerca del consultorio y puedo coordinar el acompañamiento en horario de mañana."); err != nil {
		return nil, err
	}

	// Match one request so the demo set covers the assigned state and the
	// auto-rejection of the competing application.
	if _, err := store.AcceptApplicationMatch(ctx, accepted.ID, "Gracias por ofrecerte, quedas a cargo", now); err != nil {
		return nil, err
	}

	messages := []struct {
		sender *model.User
		body   string
	}{
		{volunteer1, "Hola María, ¿le parece si paso el sábado a las 10 por Rosa?"},
		{requester1, "Perfecto, Rosa los sábados está disponible toda la mañana."},
	}
	for _, m := range messages {
		msg := &model.Message{
			ID:        uuid.New().String(),
			RequestID: request1.ID,
			SenderID:  m.sender.ID,
			Body:      m.body,
			SentAt:    now,
		}
		if err := store.InsertMessage(ctx, msg); err != nil {
			return nil, err
		}
		result.Messages++
	}

	logger.Info("Database seeded",
		zap.Int("users", result.Users),
		zap.Int("beneficiaries", result.Beneficiaries),
		zap.Int("requests", result.Requests),
		zap.Int("applications", result.Applications),
		zap.Int("messages", result.Messages))

	return result, nil
}
