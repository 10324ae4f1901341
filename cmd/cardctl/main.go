// Package main provides an offline tool for rendering student cards from the
// directory seed and for producing override secret hashes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"carteira/internal/card/assets"
	"carteira/internal/card/emitter"
	"carteira/internal/card/layout"
	"carteira/internal/credential"
	"carteira/internal/directory"
	dirstore "carteira/internal/directory/store"
	"carteira/internal/issuance"
	ledger "carteira/internal/issuance/store"
	"carteira/internal/platform/logger"
	"carteira/internal/registration"
	dErrors "carteira/pkg/domain-errors"
	"carteira/pkg/secrets"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(os.Args[2:], os.Stdout)
	case "hash-secret":
		err = runHashSecret(os.Args[2:], os.Stdout)
	case "generate-secret":
		err = runGenerateSecret(os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "cardctl:", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: cardctl <command> [flags]

Commands:
  render           render a card PDF from the directory seed
  hash-secret      print the bcrypt hash of an override secret
  generate-secret  print a random override secret and its hash

Run 'cardctl <command> --help' for command flags.
`)
}

type renderOptions struct {
	registration string
	name         string
	birthDate    string
	school       string
	grade        string
	course       string
	contact      string
	transport    string
	photo        string
	seed         string
	emblem       string
	out          string
}

func runRender(args []string, stdout io.Writer) error {
	var o renderOptions
	fs := pflag.NewFlagSet("render", pflag.ContinueOnError)
	fs.StringVarP(&o.registration, "registration", "r", "", "registration number (required)")
	fs.StringVar(&o.name, "name", "", "full name; the directory name wins when present")
	fs.StringVar(&o.birthDate, "birth-date", "", "birth date as YYYY-MM-DD (required)")
	fs.StringVar(&o.school, "school", "", "institution; the directory value wins when present")
	fs.StringVar(&o.grade, "grade", "Ensino Superior", "grade level")
	fs.StringVar(&o.course, "course", "", "course; the directory value wins when present")
	fs.StringVar(&o.contact, "contact", "-", "contact information")
	fs.StringVar(&o.transport, "transport", "", "transport choice for cities without a fixed carrier")
	fs.StringVar(&o.photo, "photo", "", "path to the student photo (required)")
	fs.StringVar(&o.seed, "seed", "", "directory seed YAML; the embedded seed when empty")
	fs.StringVar(&o.emblem, "emblem", "", "path to the municipal emblem image")
	fs.StringVarP(&o.out, "out", "o", "", "output file; derived from the student name when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if o.registration == "" {
		return fmt.Errorf("--registration is required")
	}

	var photo []byte
	if o.photo != "" {
		data, err := os.ReadFile(o.photo)
		if err != nil {
			return fmt.Errorf("read photo: %w", err)
		}
		photo = data
	}

	service, err := offlineService(o)
	if err != nil {
		return err
	}

	res, err := service.Issue(context.Background(), credential.IssueRequest{
		Submission: credential.Submission{
			FullName:           o.name,
			BirthDate:          o.birthDate,
			Institution:        o.school,
			GradeLevel:         o.grade,
			Course:             o.course,
			RegistrationNumber: o.registration,
			ContactInfo:        o.contact,
			TransportType:      o.transport,
			Photo:              photo,
		},
	})
	if err != nil {
		return describe(err)
	}

	out := o.out
	if out == "" {
		out = res.Filename
	}
	if err := os.WriteFile(out, res.Document, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(stdout, "warning:", w.String())
	}
	abs, _ := filepath.Abs(out)
	fmt.Fprintf(stdout, "%s: %d bytes (%s, %s)\n", abs, len(res.Document), res.Student.FullName, res.Student.TransportType)
	return nil
}

// offlineService wires the pipeline over in-memory stores. Overrides are
// refused since each run starts with an empty ledger.
func offlineService(o renderOptions) (*credential.Service, error) {
	log := logger.New("warn")

	seed, err := directory.LoadSeed(o.seed)
	if err != nil {
		return nil, err
	}
	repo, err := dirstore.NewInMemory(seed)
	if err != nil {
		return nil, err
	}

	preparer := assets.NewPreparer()
	if o.emblem != "" {
		emblem := assets.LoadEmblem(o.emblem)
		if !emblem.IsEmbedded() {
			fmt.Fprintln(os.Stderr, "warning: emblem not loaded:", emblem.Reason)
		}
		preparer = assets.NewPreparer(assets.WithEmblem(emblem))
	}

	return credential.NewService(
		registration.NewService(repo, registration.WithLogger(log)),
		issuance.NewGuard(ledger.NewInMemory(), issuance.DenyAll{}, issuance.WithLogger(log)),
		layout.NewCompositor(emitter.NewMeasurer(), preparer),
		emitter.New(emitter.WithLogger(log)),
		credential.WithLogger(log),
	), nil
}

func describe(err error) error {
	var de *dErrors.Error
	if errors.As(err, &de) && len(de.Fields) > 0 {
		return fmt.Errorf("%s: %v", de.Message, de.Fields)
	}
	return err
}

func runHashSecret(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("hash-secret", pflag.ContinueOnError)
	secret := fs.StringP("secret", "s", "", "secret to hash; read from OVERRIDE_SECRET when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	plain := *secret
	if plain == "" {
		plain = os.Getenv("OVERRIDE_SECRET")
	}
	if plain == "" {
		return fmt.Errorf("--secret or OVERRIDE_SECRET is required")
	}
	hash, err := secrets.Hash(plain)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, hash)
	return nil
}

func runGenerateSecret(stdout io.Writer) error {
	plain, err := secrets.Generate()
	if err != nil {
		return err
	}
	hash, err := secrets.Hash(plain)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "OVERRIDE_SECRET=%s\nOVERRIDE_SECRET_HASH=%s\n", plain, hash)
	return nil
}
