package mailer

import "fmt"

const htmlShell = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>%s</title></head>
<body style="font-family:'Segoe UI',Tahoma,Verdana,sans-serif;background:#f4f4f7;padding:40px 20px;">
  <div style="max-width:600px;margin:0 auto;background:#ffffff;border-radius:12px;overflow:hidden;">
    <div style="background:linear-gradient(135deg,#667eea 0%%,#764ba2 100%%);padding:32px;text-align:center;">
      <h1 style="color:#ffffff;margin:0;">Car Meet</h1>
    </div>
    <div style="padding:32px;color:#333333;line-height:1.7;">%s</div>
    <div style="padding:24px;text-align:center;color:#999999;font-size:12px;">
      You received this email because of an account registered with this address.
    </div>
  </div>
</body>
</html>`

func activationHTML(name, activationURL string) string {
	body := fmt.Sprintf(`
      <h2>Hi %s,</h2>
      <p>Welcome to Car Meet! Confirm your email address to activate your account.</p>
      <p style="text-align:center;margin:32px 0;">
        <a href="%s" style="background:#667eea;color:#ffffff;text-decoration:none;padding:14px 40px;border-radius:28px;font-weight:600;">Activate my account</a>
      </p>
      <p>The link is valid for 24 hours. If you did not create this account, you can ignore this email.</p>`,
		name, activationURL)
	return fmt.Sprintf(htmlShell, "Activate your account - Car Meet", body)
}

func activationSuccessHTML(name string) string {
	body := fmt.Sprintf(`
      <h2>Congratulations %s!</h2>
      <p>Your account has been activated. You can now sign in and join your first meet.</p>`,
		name)
	return fmt.Sprintf(htmlShell, "Account activated - Car Meet", body)
}

func verificationCodeHTML(name, code string) string {
	body := fmt.Sprintf(`
      <h2>Hi %s,</h2>
      <p>Your verification code is:</p>
      <p style="text-align:center;font-size:36px;letter-spacing:8px;font-weight:700;color:#667eea;margin:24px 0;">%s</p>
      <p>The code expires in 5 minutes. If you did not try to sign in, change your password.</p>`,
		name, code)
	return fmt.Sprintf(htmlShell, "Your verification code - Car Meet", body)
}
