package rest

import (
	"fmt"
	"strconv"
	"time"

	"github.com/heartmarshall/sapl-backend/internal/domain"
	"github.com/heartmarshall/sapl-backend/internal/transport/web"
)

const dateLayout = "02/01/2006"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func matterName(label string, number, year int) string {
	return fmt.Sprintf("%s nº %d de %d", label, number, year)
}

func minutesTable(sessions []domain.Session, mediaURL string) web.Table {
	t := web.Table{Headers: []string{"Sessão", "Data", "Ata"}}
	for _, s := range sessions {
		path := ""
		if s.MinutesPath != nil {
			path = mediaURL + *s.MinutesPath
		}
		t.Rows = append(t.Rows, []string{strconv.Itoa(s.Number), formatDate(s.StartDate), path})
	}
	return t
}

func attendanceTable(rep domain.AttendanceReport) web.Table {
	t := web.Table{Headers: []string{"Parlamentar", "Sessões", "%", "Ordem do Dia", "%"}}
	for _, row := range rep.Rows {
		t.Rows = append(t.Rows, []string{
			row.Parliamentarian.Name,
			strconv.Itoa(row.SessionCount),
			formatPercent(row.SessionPercentage),
			strconv.Itoa(row.AgendaCount),
			formatPercent(row.AgendaPercentage),
		})
	}
	return t
}

func tramitacaoTable(rep domain.TramitacaoReport) web.Table {
	t := web.Table{Headers: []string{"Matéria", "Data", "Prazo", "Origem", "Destino", "Status"}}
	for _, row := range rep.Rows {
		t.Rows = append(t.Rows, []string{
			matterName(row.MatterTypeLabel, row.MatterNumber, row.MatterYear),
			formatDate(row.RecordedDate),
			formatDatePtr(row.DeadlineDate),
			row.OriginLabel,
			row.DestinationLabel,
			row.StatusLabel,
		})
	}
	return t
}

func mattersTable(rep domain.MattersReport) web.Table {
	t := web.Table{Headers: []string{"Matéria", "Apresentação", "Ementa"}}
	for _, m := range rep.Matters {
		t.Rows = append(t.Rows, []string{
			matterName(m.TypeLabel, m.Number, m.Year),
			formatDate(m.PresentationDate),
			m.Summary,
		})
	}
	return t
}

func authorYearTable(rep domain.MattersByAuthorYearReport) web.Table {
	t := web.Table{Headers: []string{"Autoria", "Autor", "Tipo", "Quantidade"}}
	add := func(role string, groups []domain.AuthorGroup) {
		for _, g := range groups {
			for _, m := range g.Matters {
				t.Rows = append(t.Rows, []string{role, g.Author, m.Label, strconv.Itoa(m.Count)})
			}
			t.Rows = append(t.Rows, []string{role, g.Author, "Total", strconv.Itoa(g.Total)})
		}
	}
	add("Primeiro autor", rep.Primary)
	add("Coautor", rep.CoAuthors)
	return t
}

func meetingsTable(rows []domain.MeetingRow) web.Table {
	t := web.Table{Headers: []string{"Comissão", "Número", "Nome", "Data"}}
	for _, m := range rows {
		t.Rows = append(t.Rows, []string{m.CommitteeLabel, strconv.Itoa(m.Number), m.Name, formatDate(m.Date)})
	}
	return t
}

func hearingsTable(rows []domain.HearingRow) web.Table {
	t := web.Table{Headers: []string{"Tipo", "Número", "Nome", "Data"}}
	for _, h := range rows {
		t.Rows = append(t.Rows, []string{h.TypeLabel, strconv.Itoa(h.Number), h.Name, formatDate(h.Date)})
	}
	return t
}

// ---------------------------------------------------------------------------
// Audit and system listings
// ---------------------------------------------------------------------------

func duplicatesTable(rows []domain.DuplicateProtocol) web.Table {
	t := web.Table{Headers: []string{"Protocolo", "Ano", "Cadastrado em", "Ocorrências"}}
	for _, d := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(d.Protocol.Number),
			strconv.Itoa(d.Protocol.Year),
			formatDate(d.Protocol.CreatedAt),
			strconv.Itoa(d.Count),
		})
	}
	return t
}

func overLinkedTable(rows []domain.OverLinkedProtocol) web.Table {
	t := web.Table{Headers: []string{"Protocolo", "Ano", "Matérias vinculadas"}}
	for _, o := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(o.Protocol.Number),
			strconv.Itoa(o.Protocol.Year),
			strconv.Itoa(o.MatterCount),
		})
	}
	return t
}

func orphansTable(rows []domain.OrphanMatter) web.Table {
	t := web.Table{Headers: []string{"Matéria", "Ano", "Protocolo"}}
	for _, o := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(o.Matter.Number),
			strconv.Itoa(o.Year),
			strconv.Itoa(o.ProtocolNumber),
		})
	}
	return t
}

func usersTable(users []domain.User) web.Table {
	t := web.Table{Headers: []string{"Usuário", "Nome", "E-mail", "Ativo"}}
	for _, u := range users {
		active := "Não"
		if u.IsActive {
			active = "Sim"
		}
		t.Rows = append(t.Rows, []string{u.Username, u.FirstName + " " + u.LastName, u.Email, active})
	}
	return t
}

func authorsTable(authors []domain.ResolvedAuthor) web.Table {
	t := web.Table{Headers: []string{"Autor", "Tipo"}}
	for _, a := range authors {
		t.Rows = append(t.Rows, []string{a.Subject.DisplayName(), a.Subject.Role()})
	}
	return t
}
