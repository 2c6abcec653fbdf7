package services

import (
	"fmt"
	"net/smtp"
	"os"

	"taskapp/model"

	"github.com/joho/godotenv"
)

func LoadEmailConfig() (*model.EmailConfig, error) {
	// Load .env only for local runs; deployed environments set real env vars.
	if os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			fmt.Println("Warning: .env file not loaded, fallback to OS env vars")
		}
	}

	config := &model.EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}

	if config.Host == "" || config.Port == "" || config.Username == "" || config.Password == "" {
		return nil, fmt.Errorf("missing required SMTP environment variables")
	}

	return config, nil
}

// GenerateVerifyEmailContent builds the HTML body around the signed
// verification link.
func GenerateVerifyEmailContent(link string) string {
	return `
        <table width="680px" cellpadding="0" cellspacing="0" border="0">
          <tbody>
            <tr>
              <td width="100%" height="20" bgcolor="#eeeeee" style="font-size:0">&nbsp;</td>
            </tr>
            <tr>
              <td width="100%" bgcolor="#eeeeee" align="center"><h1>Task Planner</h1></td>
            </tr>
            <tr>
              <td width="100%" bgcolor="#ffffff" align="center" valign="top" style="line-height:24px">
                <font color="#333333" face="Arial"><span style="font-size:20px">Hello!</span></font><br>
                <font color="#333333" face="Arial"><span style="font-size:16px">Click the link below to verify your email address.</span></font><br>
              </td>
            </tr>
            <tr>
              <td width="100%" height="42" bgcolor="#ffffff" style="font-size:0">&nbsp;</td>
            </tr>
            <tr>
              <td width="100%" bgcolor="#ffffff" align="center" valign="middle" style="font-size:18px;font-family:Arial">
                <a href="` + link + `" style="color:#cc0000"><strong>Verify my email</strong></a>
              </td>
            </tr>
            <tr>
              <td width="100%" height="42" bgcolor="#ffffff" style="font-size:0">&nbsp;</td>
            </tr>
            <tr>
              <td width="100%" bgcolor="#ffffff" align="center" style="font-size:12px;color:#999999;font-family:Arial">
                The link expires in 24 hours. If you did not create an account, ignore this mail.
              </td>
            </tr>
            <tr>
              <td width="100%" height="54" bgcolor="#eeeeee" style="font-size:0">&nbsp;</td>
            </tr>
          </tbody>
        </table>
        `
}

func SendingEmail(to, subject, body string) error {
	config, err := LoadEmailConfig()
	if err != nil {
		return fmt.Errorf("config loading error: %w", err)
	}

	addr := config.Host + ":" + config.Port
	auth := smtp.PlainAuth("", config.Username, config.Password, config.Host)

	from := config.Username
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	message := "From: " + from + "\n" +
		"To: " + to + "\n" +
		"Subject: " + subject + "\n" +
		mime + "\n" +
		body

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("SMTP send error: %w", err)
	}
	return nil
}
