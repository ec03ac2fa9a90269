package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saraya/voluntariado-mayor/internal/config"
	"github.com/saraya/voluntariado-mayor/pkg/core/model"
	"github.com/saraya/voluntariado-mayor/pkg/core/services"
	"github.com/saraya/voluntariado-mayor/pkg/postgres"
	"github.com/saraya/voluntariado-mayor/pkg/report"
	"github.com/saraya/voluntariado-mayor/pkg/utils/logging"
)

const dateLayout = "2006-01-02"

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env     string
	actorID string
	app     *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "voluntariado",
		Short: "VoluntariadoMayor CLI - Match volunteers with elderly neighbours",
		Long: `A CLI tool for coordinating help requests for elderly beneficiaries:
requesters file requests, volunteers apply, and the neighbourhood board
matches, messages and reports on the work.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "dev", "Environment name, used to label log files")
	rootCmd.PersistentFlags().StringVarP(&actorID, "actor", "a", "", "ID of the user performing the operation")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(registerUserCmd())
	rootCmd.AddCommand(registerBeneficiaryCmd())
	rootCmd.AddCommand(listBeneficiariesCmd())
	rootCmd.AddCommand(createRequestCmd())
	rootCmd.AddCommand(updateRequestCmd())
	rootCmd.AddCommand(deleteRequestCmd())
	rootCmd.AddCommand(finalizeRequestCmd())
	rootCmd.AddCommand(listRequestsCmd())
	rootCmd.AddCommand(showRequestCmd())
	rootCmd.AddCommand(applyCmd())
	rootCmd.AddCommand(applicationsCmd())
	rootCmd.AddCommand(acceptCmd())
	rootCmd.AddCommand(rejectCmd())
	rootCmd.AddCommand(sendMessageCmd())
	rootCmd.AddCommand(messagesCmd())
	rootCmd.AddCommand(markReadCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// initApp sets up logger, config and the database connection
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Debug("Loading configuration")
	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return nil
}

// printError translates the error taxonomy into operator-friendly messages.
func printError(err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		fmt.Fprintf(os.Stderr, "✗ Not found: %v\n", err)
	case errors.Is(err, model.ErrPermissionDenied):
		fmt.Fprintf(os.Stderr, "✗ Permission denied: the acting user may not perform this operation\n")
	case errors.Is(err, model.ErrInvalidState):
		fmt.Fprintf(os.Stderr, "✗ Invalid state: %v\n", err)
	case errors.Is(err, model.ErrDuplicateApplication):
		fmt.Fprintf(os.Stderr, "✗ You already have a pending application on this request\n")
	case model.IsValidationError(err):
		fmt.Fprintf(os.Stderr, "✗ Validation failed: %v\n", err)
	default:
		fmt.Fprintf(os.Stderr, "✗ Error: %v\n", err)
	}
}

// resolveActor maps an --actor given as an email to its user ID. An empty
// actor stays empty (anonymous).
func resolveActor() error {
	if strings.Contains(actorID, "@") {
		user, err := app.database.GetUserByEmail(app.ctx, actorID)
		if err != nil {
			return err
		}
		actorID = user.ID
	}
	return nil
}

func requireActor() error {
	if actorID == "" {
		return fmt.Errorf("this command requires --actor")
	}
	return resolveActor()
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("date must be formatted %s: %w", dateLayout, err)
	}
	return &t, nil
}

func printRequest(r *model.Request) {
	fmt.Printf("ID:          %s\n", r.ID)
	fmt.Printf("Title:       %s\n", r.Title)
	fmt.Printf("Help type:   %s\n", r.HelpType)
	fmt.Printf("Status:      %s\n", r.Status)
	fmt.Printf("Priority:    %s\n", r.Priority)
	if r.Deadline != nil {
		fmt.Printf("Deadline:    %s\n", r.Deadline.Format(dateLayout))
	}
	if r.AssignedVolunteerID != nil {
		fmt.Printf("Volunteer:   %s\n", *r.AssignedVolunteerID)
	}
	if r.ClosingRemarks != "" {
		fmt.Printf("Remarks:     %s\n", r.ClosingRemarks)
	}
}

// Command definitions

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.database.RunMigrations(app.ctx); err != nil {
				return err
			}
			fmt.Println("✓ Database schema is up to date")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty database with demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.Seed(app.ctx, app.database, app.logger)
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ Demo data created!\n\n")
			fmt.Printf("Users:         %d\n", result.Users)
			fmt.Printf("Beneficiaries: %d\n", result.Beneficiaries)
			fmt.Printf("Requests:      %d\n", result.Requests)
			fmt.Printf("Applications:  %d\n", result.Applications)
			fmt.Printf("Messages:      %d\n", result.Messages)
			return nil
		},
	}
}

func registerUserCmd() *cobra.Command {
	var role, phone, address string

	cmd := &cobra.Command{
		Use:   "registerUser <name> <email>",
		Short: "Register a new requester or volunteer account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := services.RegisterUser(app.ctx, app.database, app.logger, services.RegisterUserParams{
				Name:    args[0],
				Email:   args[1],
				Role:    role,
				Phone:   phone,
				Address: address,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ User registered!\n\n")
			fmt.Printf("ID:    %s\n", user.ID)
			fmt.Printf("Name:  %s\n", user.Name)
			fmt.Printf("Role:  %s\n", user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Account role: REQUESTER or VOLUNTEER")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone number")
	cmd.Flags().StringVar(&address, "address", "", "Contact address")
	cmd.MarkFlagRequired("role")

	return cmd
}

func registerBeneficiaryCmd() *cobra.Command {
	var phone, emergency, medical string

	cmd := &cobra.Command{
		Use:   "registerBeneficiary <national_id> <first_name> <last_name> <birth_date> <address>",
		Short: "Register an elderly beneficiary (requester only)",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireActor(); err != nil {
				return err
			}
			birthDate, err := parseDate(args[3])
			if err != nil {
				return err
			}

			beneficiary, err := services.RegisterBeneficiary(app.ctx, app.database, app.logger, actorID, services.RegisterBeneficiaryParams{
				NationalID:       args[0],
				FirstName:        args[1],
				LastName:         args[2],
				BirthDate:        *birthDate,
				Address:          args[4],
				Phone:            phone,
				EmergencyContact: emergency,
				MedicalNotes:     medical,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Beneficiary registered!\n\n")
			fmt.Printf("ID:   %s\n", beneficiary.ID)
			fmt.Printf("Name: %s\n", beneficiary.FullName())
			return nil
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone number")
	cmd.Flags().StringVar(&emergency, "emergency-contact", "", "Emergency contact details")
	cmd.Flags().StringVar(&medical, "medical-notes", "", "Relevant medical notes")

	return cmd
}

func listBeneficiariesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listBeneficiaries",
		Short: "List all active beneficiaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			beneficiaries, err := app.database.ListBeneficiaries(app.ctx)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d beneficiaries:\n\n", len(beneficiaries))
			now := time.Now().UTC()
			for _, b := range beneficiaries {
				fmt.Printf("- %s (%s), age %d - %s (%s)\n",
					b.FullName(), b.NationalID, b.AgeAt(now), b.Address, b.ID)
			}
			return nil
		},
	}
}

func createRequestCmd() *cobra.Command {
	var priority, deadline string

	cmd := &cobra.Command{
		Use:   "createRequest <beneficiary_id> <title> <description> <help_type>",
		Short: "File a new help request (requester only)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireActor(); err != nil {
				return err
			}
			deadlineTime, err := parseDate(deadline)
			if err != nil {
				return err
			}

			request, err := services.CreateRequest(app.ctx, app.database, app.logger, actorID, services.CreateRequestParams{
				BeneficiaryID: args[0],
				Title:         args[1],
				Description:   args[2],
				HelpType:      args[3],
				Priority:      priority,
				Deadline:      deadlineTime,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Request created!\n\n")
			printRequest(request)
			return nil
		},
	}

	cmd.Flags().StringVar(&priority, "priority", "", "Priority: LOW, MEDIUM, HIGH or URGENT (default MEDIUM)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline, formatted 2006-01-02")

	return cmd
}

func updateRequestCmd() *cobra.Command {
	var title, description, helpType, priority, deadline string

	cmd := &cobra.Command{
		Use:   "updateRequest <request_id>",
		Short: "Edit a pending request's fields (creator only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireActor(); err != nil {
				return err
			}

			params := services.UpdateRequestParams{}
			if cmd.Flags().Changed("title") {
				params.Title = &title
			}
			if cmd.Flags().Changed("description") {
				params.Description = &description
			}
			if cmd.Flags().Changed("help-type") {
				params.HelpType = &helpType
			}
			if cmd.Flags().Changed("priority") {
				params.Priority = &priority
			}
			if cmd.Flags().Changed("deadline") {
				deadlineTime, err := parseDate(deadline)
				if err != nil {
					return err
				}
				params.Deadline = deadlineTime
			}

			request, err := services.UpdateRequest(app.ctx, app.database, app.logger, actorID, args[0], params)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Request updated!\n\n")
			printRequest(request)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&helpType, "help-type", "", "New help type")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&deadline, "deadline", "", "New deadline, formatted 2006-01-02")

	return cmd
}

func deleteRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deleteRequest <request_id>",
		Short: "Delete a pending request and its applications (creator only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireActor(); err != nil {
				return err
			}
			if err := services.DeleteRequest(app.ctx, app.database, app.logger, actorID, args[0]); err != nil {
				return err
			}
			fmt.Println("✓ Request deleted")
			return nil
		},
	}
}

func finalizeRequestCmd() *cobra.Command {
	var remarks string

	cmd := &cobra.Command{
		Use:   "finalizeRequest <request_id>",
		Short: "Close an assigned request (creator or assigned volunteer)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireActor(); err != nil {
				return err
			}
			request, err := services.FinalizeRequest(app.ctx, app.database, app.logger, actorID, args[0], remarks)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Request finalized!\n\n")
			printRequest(request)
			return nil
		},
	}

	cmd.Flags().StringVar(&remarks, "remarks", "", "Closing remarks about how the help went")

	return cmd
}

func listRequestsCmd() *cobra.Command {
	var search, priority string

	cmd := &cobra.Command{
		Use:   "listRequests",
		Short: "List requests: own requests for a requester, the open pool otherwise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveActor(); err != nil {
				return err
			}
			requests, err := services.ListRequests(app.ctx, app.database, app.logger, actorID, services.ListOptions{
				Search:   search,
				Priority: priority,
			})
			if err != nil {
				return err
			}

			if len(requests) == 0 {
				fmt.Println("No requests found.")
				return nil
			}

			fmt.Printf("\nFound %d requests:\n\n", len(requests))
			for _, r := range requests {
				line := fmt.Sprintf("- [%s/%s] %s (%s)", r.Status, r.Priority, r.Title, r.ID)
				if r.Deadline != nil {
					line += fmt.Sprintf(" due %s", r.Deadline.Format(dateLayout))
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter by text in title or description")
	cmd.Flags().StringVar(&priority, "priority", "", "Filter by priority")

	return cmd
}

func showRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <request_id>",
		Short: "Show a request with the details visible to the acting user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveActor(); err != nil {
				return err
			}
			detail, err := services.GetRequestDetail(app.ctx, app.database, app.logger, actorID, args[0])
			if err != nil {
				return err
			}

			printRequest(&detail.Request)
			fmt.Printf("Beneficiary: %s (age %d)\n", detail.Beneficiary.FullName(), detail.Beneficiary.AgeAt(time.Now().UTC()))
			fmt.Printf("Creator:     %s <%s>\n", detail.Creator.Name, detail.Creator.Email)
			if detail.AssignedVolunteer != nil {
				fmt.Printf("Volunteer:   %s <%s>\n", detail.AssignedVolunteer.Name, detail.AssignedVolunteer.Email)
			}
			if detail.HasApplied {
				fmt.Println("\nYou have a pending application on this request.")
			}

			if len(detail.Applications) > 0 {
				fmt.Printf("\nApplications (%d):\n", len(detail.Applications))
				for _, a := range detail.Applications {
					fmt.Printf("  - [%s] %s: %s\n", a.Status, a.ID, a.Motivation)
				}
			}

			if len(detail.Messages) > 0 {
				fmt.Printf("\nConversation (%d messages):\n", len(detail.Messages))
				for _, m := range detail.Messages {
					marker := " "
					if !m.Read {
						marker = "*"
					}
					fmt.Printf("  %s %s %s: %s\n", marker, m.SentAt.Format("2006-01-02 15:04"), m.SenderID, m.Body)
				}
			}
			return nil
		},
	}
}

func applyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <request_id> <motivation>",
		Short: "Apply to help with a pending request (volunteer only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireActor(); err != nil {
				return err
			}
			application, err := services.SubmitApplication(app.ctx, app.database, app.logger, actorID, args[0], args[1], app.cfg.MinMotivationLength)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Application submitted!\n\n")
			fmt.Printf("ID:      %s\n", application.ID)
			fmt.Printf("Request: %s\n", application.RequestID)
			fmt.Printf("Status:  %s\n", application.Status)
			return nil
		},
	}
}

func applicationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "applications <request_id>",
		Short: "List the applications on a request (creator only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireActor(); err != nil {
				return err
			}
			applications, err := services.ListApplications(app.ctx, app.database, app.logger, actorID, args[0])
			if err != nil {
				return err
			}

			if len(applications) == 0 {
				fmt.Println("No applications yet.")
				return nil
			}

			fmt.Printf("\nFound %d applications:\n\n", len(applications))
			for _, a := range applications {
				fmt.Printf("- [%s] %s\n", a.Status, a.ID)
				fmt.Printf("  Volunteer:  %s\n", a.VolunteerID)
				fmt.Printf("  Motivation: %s\n", a.Motivation)
				if a.ResponseComment != "" {
					fmt.Printf("  Response:   %s\n", a.ResponseComment)
				}
			}
			return nil
		},
	}
}

func acceptCmd() *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "accept <application_id>",
		Short: "Accept an application, assigning its volunteer to the request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireActor(); err != nil {
				return err
			}
			result, err := services.AcceptApplication(app.ctx, app.database, app.logger, actorID, args[0], comment)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Volunteer matched!\n\n")
			fmt.Printf("Request:       %s\n", result.Request.Title)
			fmt.Printf("Volunteer:     %s\n", result.Accepted.VolunteerID)
			fmt.Printf("Auto-rejected: %d competing applications\n", result.RejectedCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "Comment to the accepted volunteer")

	return cmd
}

func rejectCmd() *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "reject <application_id>",
		Short: "Reject a single application, leaving the request open",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireActor(); err != nil {
				return err
			}
			application, err := services.RejectApplication(app.ctx, app.database, app.logger, actorID, args[0], comment)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Application rejected\n\n")
			fmt.Printf("ID:       %s\n", application.ID)
			fmt.Printf("Response: %s\n", application.ResponseComment)
			return nil
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "Comment to the rejected volunteer")

	return cmd
}

func sendMessageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sendMessage <request_id> <body>",
		Short: "Send a message on a request's conversation (participants only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireActor(); err != nil {
				return err
			}
			message, err := services.SendMessage(app.ctx, app.database, app.logger, actorID, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("✓ Message sent (%s)\n", message.ID)
			return nil
		},
	}
}

func messagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages <request_id>",
		Short: "Show a request's conversation (participants only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireActor(); err != nil {
				return err
			}
			messages, err := services.ListMessages(app.ctx, app.database, app.logger, actorID, args[0])
			if err != nil {
				return err
			}

			if len(messages) == 0 {
				fmt.Println("No messages yet.")
				return nil
			}

			for _, m := range messages {
				marker := " "
				if !m.Read {
					marker = "*"
				}
				fmt.Printf("%s %s %s (%s): %s\n", marker, m.SentAt.Format("2006-01-02 15:04"), m.SenderID, m.ID, m.Body)
			}
			return nil
		},
	}
}

func markReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "markRead <message_id>",
		Short: "Mark a received message as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireActor(); err != nil {
				return err
			}
			if err := services.MarkMessageRead(app.ctx, app.database, app.logger, actorID, args[0]); err != nil {
				return err
			}
			fmt.Println("✓ Message marked as read")
			return nil
		},
	}
}

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the acting user's request and application counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireActor(); err != nil {
				return err
			}
			stats, err := services.Dashboard(app.ctx, app.database, app.logger, actorID)
			if err != nil {
				return err
			}

			fmt.Printf("\nDashboard (%s)\n\n", stats.Role)
			if stats.Role == model.RoleRequester {
				fmt.Printf("Pending requests:   %d\n", stats.PendingRequests)
				fmt.Printf("Assigned requests:  %d\n", stats.AssignedRequests)
				fmt.Printf("Finalized requests: %d\n", stats.FinalizedRequests)
			} else {
				fmt.Printf("Open requests:      %d\n", stats.AvailableRequests)
				fmt.Printf("My assignments:     %d\n", stats.AssignedRequests)
				fmt.Printf("Completed:          %d\n", stats.FinalizedRequests)
				fmt.Printf("My applications:    %d\n", stats.MyApplications)
			}
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	var export string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the management report, optionally exporting it to Excel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			managementReport, err := services.BuildManagementReport(app.ctx, app.database, app.logger,
				app.cfg.ReportWindowDays, app.cfg.TopVolunteersLimit)
			if err != nil {
				return err
			}

			fmt.Printf("\nManagement report (last %d days)\n", managementReport.WindowDays)

			fmt.Printf("\nRequests in progress (%d):\n", len(managementReport.AssignedRequests))
			for _, row := range managementReport.AssignedRequests {
				fmt.Printf("- [%s] %s: %s for %s, helped by %s\n",
					row.Priority, row.Title, row.HelpType, row.BeneficiaryName, row.VolunteerName)
			}

			fmt.Printf("\nApplication statistics (%d requests):\n", len(managementReport.ApplicationStats))
			for _, row := range managementReport.ApplicationStats {
				fmt.Printf("- %s [%s]: %d applications (%d pending, %d accepted, %d rejected)\n",
					row.Title, row.Status, row.Applications, row.Pending, row.Accepted, row.Rejected)
			}

			fmt.Printf("\nTop volunteers (%d):\n", len(managementReport.TopVolunteers))
			for i, row := range managementReport.TopVolunteers {
				fmt.Printf("%2d. %s: %d completed, %d assigned, %d applications\n",
					i+1, row.Name, row.Completed, row.Assigned, row.Applications)
			}

			if export != "" {
				if err := report.WriteXLSX(managementReport, export); err != nil {
					return err
				}
				fmt.Printf("\n✓ Report exported to %s\n", export)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&export, "export", "", "Write the report to this .xlsx file")

	return cmd
}
