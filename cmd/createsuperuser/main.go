package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pf-responses/respuestas-api/internal/config"
	"github.com/pf-responses/respuestas-api/internal/database"
	"github.com/pf-responses/respuestas-api/internal/logging"
	"github.com/pf-responses/respuestas-api/internal/repository"
	"github.com/pf-responses/respuestas-api/internal/services"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// passwordEnv lets scripted deployments skip the interactive password prompt.
const passwordEnv = "SUPERUSER_PASSWORD"

// readPassword is swapped out in tests to avoid touching the terminal.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

var errPasswordMismatch = errors.New("passwords do not match")

func main() {
	input, err := collectInput(os.Args[1:], bufio.NewReader(os.Stdin), os.Stdout, os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logrus.Fatal(err)
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := database.Connect(cfg); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	authService := services.NewAuthService(repository.NewUserRepository(database.GetDB()))
	user, err := authService.CreateSuperuser(context.Background(), input)
	if err != nil {
		logrus.Fatalf("Failed to create superuser: %v", err)
	}

	fmt.Printf("Superuser %s created.\n", user.Email)
}

// collectInput reads flags and prompts for whatever is still missing.
func collectInput(args []string, reader *bufio.Reader, w io.Writer, getenv func(string) string) (services.CreateUserInput, error) {
	fs := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
	fs.SetOutput(w)
	email := fs.String("email", "", "email address of the new superuser")
	username := fs.String("username", "", "username (defaults to the email address)")
	firstName := fs.String("nombre", "", "first name for the profile")
	lastName := fs.String("apellido", "", "last name for the profile")
	if err := fs.Parse(args); err != nil {
		return services.CreateUserInput{}, err
	}

	input := services.CreateUserInput{
		Email:    strings.TrimSpace(*email),
		Username: strings.TrimSpace(*username),
	}

	var err error
	if input.Email == "" {
		if input.Email, err = prompt(reader, w, "Email: "); err != nil {
			return input, err
		}
	}
	if input.Username == "" {
		input.Username = input.Email
	}
	if *firstName != "" || *lastName != "" {
		input.Profile = &services.ProfileInput{FirstName: *firstName, LastName: *lastName}
	}

	if password := getenv(passwordEnv); password != "" {
		input.Password = password
		return input, nil
	}

	input.Password, err = promptPassword(w)
	return input, err
}

func prompt(reader *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprint(w, label)
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(w io.Writer) (string, error) {
	fmt.Fprint(w, "Password: ")
	first, err := readPassword()
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}

	fmt.Fprint(w, "Password (again): ")
	second, err := readPassword()
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errPasswordMismatch
	}
	return string(first), nil
}
