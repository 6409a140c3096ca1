package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/mail"
	"strings"
	"unicode"

	"github.com/sendgrid/sendgrid-go"
	twilio "github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	lookupsv2 "github.com/twilio/twilio-go/rest/lookups/v2"
)

// MinPhoneDigits is the least number of digits a contact phone must carry
// once punctuation and spaces are stripped.
const MinPhoneDigits = 10

// -----------------------------------------------------------------------
// 1) PHONE NUMBER VALIDATION
// -----------------------------------------------------------------------

// PhoneDigits drops everything but the digits of a phone number.
func PhoneDigits(number string) string {
	var b strings.Builder
	for _, r := range number {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasMinPhoneDigits reports whether number contains at least MinPhoneDigits digits.
func HasMinPhoneDigits(number string) bool {
	return len(PhoneDigits(number)) >= MinPhoneDigits
}

// ToE164 turns a loosely formatted number into E.164. Ten-digit numbers are
// assumed to be North American.
func ToE164(number string) string {
	digits := PhoneDigits(number)
	if len(digits) == MinPhoneDigits {
		return "+1" + digits
	}
	return "+" + digits
}

// ValidatePhoneNumber validates `number`.
//
//   - The number must carry at least MinPhoneDigits digits.
//   - If validateWithTwilio == true and a non-nil Twilio RestClient is provided,
//     the function additionally performs a Twilio Lookups V2 fetch.
func ValidatePhoneNumber(
	ctx context.Context,
	number string,
	validateWithTwilio bool,
	tw *twilio.RestClient,
) (bool, error) {
	if !HasMinPhoneDigits(number) {
		return false, nil
	}
	if !validateWithTwilio || tw == nil {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	res, err := tw.LookupsV2.FetchPhoneNumber(ToE164(number), &lookupsv2.FetchPhoneNumberParams{})
	if err != nil {
		if restErr, ok := err.(*twilioclient.TwilioRestError); ok {
			if restErr.Status == 404 {
				return false, nil
			}
			return false, fmt.Errorf("twilio lookup failed: %d %s", restErr.Status, restErr.Error())
		}
		return false, err
	}
	if res != nil && res.Valid != nil {
		return *res.Valid, nil
	}
	return true, nil
}

// -----------------------------------------------------------------------
// 2) EMAIL VALIDATION
// -----------------------------------------------------------------------

func isValidEmailSyntax(e string) bool {
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return false
	}
	at := strings.LastIndex(e, "@")
	return at > 0 && strings.Contains(e[at+1:], ".")
}

func hasMX(ctx context.Context, domain string) bool {
	mx, err := net.DefaultResolver.LookupMX(ctx, domain)
	return err == nil && len(mx) > 0
}

// ValidateEmail returns true if the string parses as a bare address with a
// dotted domain. When validateWithSendGrid is set it also requires an MX
// record and a SendGrid verdict of "Valid" or "Risky".
//
// Any SendGrid/network error is returned so the caller can decide.
func ValidateEmail(ctx context.Context, apiKey string, email string, validateWithSendGrid bool) (bool, error) {
	if !isValidEmailSyntax(email) {
		return false, nil
	}
	if !validateWithSendGrid || apiKey == "" {
		return true, nil
	}

	parts := strings.SplitN(email, "@", 2)
	if !hasMX(ctx, parts[1]) {
		return false, nil
	}

	req := sendgrid.GetRequest(apiKey, "/v3/validations/email", "https://api.sendgrid.com")
	req.Method = "POST"
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return false, err
	}
	req.Body = body

	resp, err := sendgrid.API(req)
	if err != nil {
		return false, err
	}

	switch resp.StatusCode {
	case 200:
		var sg struct {
			Result struct {
				Verdict string `json:"verdict"`
			} `json:"result"`
		}
		if jsonErr := json.Unmarshal([]byte(resp.Body), &sg); jsonErr != nil {
			return false, fmt.Errorf("sendgrid JSON decode: %w", jsonErr)
		}
		verdict := strings.ToLower(sg.Result.Verdict)
		return verdict == "valid" || verdict == "risky", nil
	case 400:
		return false, nil
	default:
		return false, fmt.Errorf("sendgrid validation failed: status %d – %s", resp.StatusCode, resp.Body)
	}
}
