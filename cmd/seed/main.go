package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"siteworks/internal/auth"
	"siteworks/internal/config"
	"siteworks/internal/db"
	"siteworks/internal/model"
	"siteworks/internal/repository"
)

const (
	demoEmail    = "demo@siteworks.local"
	demoPassword = "demo-password"
)

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Ticket{},
		&model.Invoice{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	if err != nil && err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to check demo user: %v", err)
	}
	if user != nil {
		log.Printf("Demo user %s already exists, nothing to do", demoEmail)
		return
	}

	hash, err := auth.NewPasswordHasher().Hash(demoPassword)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	user = &model.User{
		Email:                demoEmail,
		PasswordHash:         hash,
		Role:                 model.RoleClient,
		FirstName:            "Demo",
		LastName:             "Client",
		Company:              "Demo Bakery SRL",
		NotifyProjectUpdates: true,
		NotifyTicketReplies:  true,
		NotifyInvoices:       true,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Created demo user %s (password: %s)", demoEmail, demoPassword)

	projectRepo := repository.NewProjectRepository(gormDB)
	projects := []model.Project{
		{UserID: user.ID, Name: "Website redesign", Description: "New marketing site with online ordering", Status: model.ProjectStatusInProgress},
		{UserID: user.ID, Name: "SEO audit", Description: "Quarterly search visibility review", Status: model.ProjectStatusCompleted},
	}
	for i := range projects {
		if err := projectRepo.Create(ctx, &projects[i]); err != nil {
			log.Fatalf("Failed to create project %q: %v", projects[i].Name, err)
		}
	}
	log.Printf("Created %d sample projects", len(projects))

	ticketRepo := repository.NewTicketRepository(gormDB)
	ticket := model.Ticket{
		UserID:   user.ID,
		Subject:  "Contact form not sending",
		Message:  "Customers report the contact form shows an error since yesterday.",
		Priority: model.TicketPriorityHigh,
		Status:   model.TicketStatusOpen,
	}
	if err := ticketRepo.Create(ctx, &ticket); err != nil {
		log.Fatalf("Failed to create sample ticket: %v", err)
	}
	log.Printf("Created sample ticket %s", ticket.Reference)

	invoiceRepo := repository.NewInvoiceRepository(gormDB)
	now := time.Now()
	invoices := []model.Invoice{
		{UserID: user.ID, Amount: decimal.NewFromInt(1200), Status: model.InvoiceStatusPaid, IssuedAt: now.AddDate(0, -1, 0), DueDate: now.AddDate(0, -1, 14)},
		{UserID: user.ID, Amount: decimal.NewFromInt(450), Status: model.InvoiceStatusSent, IssuedAt: now, DueDate: now.AddDate(0, 0, 14)},
	}
	for i := range invoices {
		if err := invoiceRepo.Create(ctx, &invoices[i]); err != nil {
			log.Fatalf("Failed to create invoice: %v", err)
		}
	}
	log.Printf("Created %d sample invoices", len(invoices))

	log.Println("Seed completed successfully!")
}
