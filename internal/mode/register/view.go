package register

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/attendify/attendify/internal/domain"
	"github.com/attendify/attendify/internal/policy"
	"github.com/attendify/attendify/internal/ui/styles"
)

var fieldLabels = map[policy.Field]string{
	policy.FieldFirstName:        "Eesnimi",
	policy.FieldLastName:         "Perekonnanimi",
	policy.FieldPersonalCode:     "Isikukood",
	policy.FieldCompanyName:      "Ettevõtte nimi",
	policy.FieldRegistrationCode: "Registrikood",
	policy.FieldParticipantCount: "Osalejate arv",
	policy.FieldContactPerson:    "Kontaktisik",
	policy.FieldEmail:            "E-post",
	policy.FieldPhone:            "Telefon",
	policy.FieldAdditionalInfo:   "Lisainfo",
}

const labelWidth = 16

// View renders the registration form.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())

	if banner := m.renderBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n\n")
	}

	required := policy.Rules(m.form.Variant)
	for i, row := range m.rows() {
		focused := i == m.focus
		switch row.kind {
		case rowVariant:
			b.WriteString(m.renderVariantRow(focused))
		case rowPayment:
			b.WriteString(m.renderPaymentRow(focused))
		case rowParticipants:
			b.WriteString(m.renderParticipants(focused))
		default:
			b.WriteString(m.renderFieldRow(row.field, required[row.field].Required, focused))
		}
	}

	b.WriteString(m.renderStatusBar())

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.event.Name))
	b.WriteString("\n")

	details := m.event.DateTime
	if m.event.Location != "" {
		if details != "" {
			details += "  "
		}
		details += m.event.Location
	}
	if details != "" {
		b.WriteString(styles.SubtleStyle.Render(details))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderBanner() string {
	message := m.form.Err
	if message == "" {
		message = m.notice
	}
	if message == "" {
		return ""
	}

	width := m.width - 8
	if width < 20 {
		width = 60
	}
	return styles.BannerStyle.Render(wordwrap.String(message, width))
}

func label(text string, required, focused bool) string {
	if required {
		text += " *"
	}
	text = runewidth.FillRight(text, labelWidth)
	if focused {
		return styles.FocusedStyle.Render(text)
	}
	return styles.LabelStyle.Render(text)
}

func (m Model) renderVariantRow(focused bool) string {
	radio := func(active bool, text string) string {
		if active {
			return styles.SelectedRowStyle.Render("(•) " + text)
		}
		return "( ) " + text
	}

	row := label("Osaleja tüüp", true, focused) +
		radio(m.form.Variant == domain.VariantIndividual, "Eraisik") + "  " +
		radio(m.form.Variant == domain.VariantOrganization, "Ettevõte")
	return row + "\n\n"
}

func (m Model) renderPaymentRow(focused bool) string {
	var parts []string
	for _, method := range domain.PaymentMethods() {
		if m.form.PaymentMethod() == method {
			parts = append(parts, styles.SelectedRowStyle.Render("["+method.Label()+"]"))
		} else {
			parts = append(parts, " "+method.Label()+" ")
		}
	}

	row := label("Maksmisviis", true, focused) + strings.Join(parts, " ")
	if msg := m.form.ErrorFor(policy.FieldPaymentMethod); msg != "" {
		row += "\n" + strings.Repeat(" ", labelWidth) + styles.FieldErrorStyle.Render(msg)
	}
	return row + "\n\n"
}

func (m Model) renderFieldRow(field policy.Field, required, focused bool) string {
	row := label(fieldLabels[field], required, focused) + m.inputs[field].View()

	if msg := m.form.ErrorFor(field); msg != "" {
		row += "\n" + strings.Repeat(" ", labelWidth) + styles.FieldErrorStyle.Render(msg)
	}

	if focused && m.suggestions.Open() && m.suggestField == field {
		dropdown := m.suggestions.View()
		row += "\n" + lipgloss.NewStyle().MarginLeft(labelWidth).Render(dropdown)
	}

	return row + "\n\n"
}

func (m Model) renderParticipants(focused bool) string {
	var b strings.Builder

	header := fmt.Sprintf("Osalejad (%d)", len(m.participants))
	if focused {
		b.WriteString(styles.FocusedStyle.Render(header))
	} else {
		b.WriteString(styles.HeaderStyle.Render(header))
	}
	b.WriteString("\n")

	if len(m.participants) == 0 {
		b.WriteString(styles.SubtleStyle.Render("  Osalejaid ei ole veel lisatud"))
		b.WriteString("\n")
		return b.String()
	}

	width := m.width - 8
	if width < 20 {
		width = 60
	}
	for i, p := range m.participants {
		line := p.DisplayName()
		if key := p.IdentityKey(); key != "" {
			line += "  " + key
		}
		line = runewidth.Truncate(line, width, "…")

		if focused && i == m.partIdx {
			b.WriteString(styles.SelectedRowStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderStatusBar() string {
	if m.services.Config == nil || !m.services.Config.UI.ShowStatusBar {
		return ""
	}

	hints := "tab: järgmine väli • ctrl+s: salvesta • esc: tagasi"
	if m.focusedRow().kind == rowParticipants {
		hints = "j/k: vali • x: eemalda • esc: tagasi"
	}
	if m.form.Pending {
		hints = "Salvestan..."
	}
	return "\n" + styles.StatusBarStyle.Render(hints)
}
