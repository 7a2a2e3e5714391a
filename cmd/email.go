package cmd

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bplemons/flow-metrics/internal/analysis"
)

var emailReportCmd = &cobra.Command{
	Use:   "email-report <address>",
	Short: "Emails the vocabulary report",
	Long:  `Generates the vocabulary report and sends it as HTML to the given address via SendGrid.`,
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		err := emailReport(args[0], viper.GetString("from"), viper.GetBool("dryRun"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailReportCmd)

	var from string
	emailReportCmd.Flags().StringVar(&from, "from", "", "From email address")
	viper.BindPFlag("from", emailReportCmd.Flags().Lookup("from"))

	var dryRun bool
	emailReportCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", emailReportCmd.Flags().Lookup("dry_run"))
}

func emailReport(toAddress, fromAddress string, dryRun bool) error {
	cfg := loadConfig()

	report, err := generateReport(cfg.DatabasePath)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Vocabulary report %s", report.GeneratedDate)
	body := emailBody(report)

	if dryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, body)
		return nil
	}

	if err := cfg.RequireSendGrid(); err != nil {
		return err
	}

	from := mail.NewEmail("flow-metrics", fromAddress)
	to := mail.NewEmail(toAddress, toAddress)
	message := mail.NewSingleEmail(from, subject, to, body, body)
	client := sendgrid.NewSendClient(cfg.SendGridAPIKey)
	if _, err := client.Send(message); err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}

	fmt.Printf("Sent report to %s\n", toAddress)
	return nil
}

func emailBody(report *analysis.Report) string {
	out := `
<html>
  <head>
<style>
td {
  padding: 0.1em 0.2em;
}
table, th, td {
  border: 1px solid black;
  border-collapse: collapse;
}
</style>
  </head>
  <body>
`
	out += fmt.Sprintf("<h2>Vocabulary report, %s:</h2>\n", report.GeneratedDate)
	out += formatReport(report).HTML()
	out += fmt.Sprintf("<div>%s</div>\n", correlationsHTML(report))
	out += `
  </body>
</html>
`
	return out
}

func correlationsHTML(report *analysis.Report) string {
	out := ""
	if c := report.PopularityDiversity; c != nil {
		out += fmt.Sprintf("Popularity vs. lexical diversity: Pearson %.3f, Spearman %.3f (n=%d)<br>\n",
			c.Pearson, c.Spearman, c.N)
	}
	if c := report.FollowersDiversity; c != nil {
		out += fmt.Sprintf("Followers vs. lexical diversity: Pearson %.3f, Spearman %.3f (n=%d)<br>\n",
			c.Pearson, c.Spearman, c.N)
	}
	if out == "" {
		out = "Not enough artists to correlate diversity with popularity.\n"
	}
	return out
}
