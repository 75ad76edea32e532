package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Key identifies a catalog message.
type Key string

// Page titles.
const (
	TitleMinutes             Key = "title.minutes"
	TitleAttendance          Key = "title.attendance"
	TitleTramitacaoHistory   Key = "title.tramitacao_history"
	TitleTramitacaoDeadline  Key = "title.tramitacao_deadline"
	TitleMeetings            Key = "title.meetings"
	TitleHearings            Key = "title.hearings"
	TitleMattersInTramitacao Key = "title.matters_in_tramitacao"
	TitleMattersByAuthorYear Key = "title.matters_by_author_year"
	TitleMattersByAuthor     Key = "title.matters_by_author"
	TitleInconsistencies     Key = "title.inconsistencies"
	TitleDuplicateProtocols  Key = "title.duplicate_protocols"
	TitleOverLinkedProtocols Key = "title.over_linked_protocols"
	TitleOrphanMatters       Key = "title.orphan_matters"
	TitleUsers               Key = "title.users"
	TitleAuthors             Key = "title.authors"
	TitleHouse               Key = "title.house"
	TitleAppConfig           Key = "title.app_config"
)

// Empty-listing messages.
const (
	NoDuplicateProtocols  Key = "empty.duplicate_protocols"
	NoOverLinkedProtocols Key = "empty.over_linked_protocols"
	NoOrphanMatters       Key = "empty.orphan_matters"
	NoUsers               Key = "empty.users"
	NoAuthors             Key = "empty.authors"
	NoResults             Key = "empty.results"
)

var catalog = map[Key][2]string{
	// key: {pt-BR, en}
	TitleMinutes:             {"Atas das Sessões Plenárias", "Plenary session minutes"},
	TitleAttendance:          {"Presença dos parlamentares nas sessões", "Parliamentarian attendance at sessions"},
	TitleTramitacaoHistory:   {"Histórico de Tramitações", "Tramitação history"},
	TitleTramitacaoDeadline:  {"Fim de Prazo de Tramitações", "Tramitação deadlines"},
	TitleMeetings:            {"Reunião de Comissão", "Committee meetings"},
	TitleHearings:            {"Audiência Pública", "Public hearings"},
	TitleMattersInTramitacao: {"Matérias em Tramitação", "Matters in tramitação"},
	TitleMattersByAuthorYear: {"Matérias por Ano, Autor e Tipo", "Matters by year, author and type"},
	TitleMattersByAuthor:     {"Matérias por Autor", "Matters by author"},
	TitleInconsistencies:     {"Lista de Inconsistências", "Inconsistency list"},
	TitleDuplicateProtocols:  {"Protocolos duplicados", "Duplicate protocols"},
	TitleOverLinkedProtocols: {"Protocolos que excedem o limite de matérias vinculadas", "Protocols exceeding the linked matter limit"},
	TitleOrphanMatters:       {"Matérias Legislativas com protocolo inexistente", "Matters with a nonexistent protocol"},
	TitleUsers:               {"Usuários", "Users"},
	TitleAuthors:             {"Autores", "Authors"},
	TitleHouse:               {"Casa Legislativa", "Legislative house"},
	TitleAppConfig:           {"Configurações da Aplicação", "Application settings"},

	NoDuplicateProtocols:  {"Nenhum protocolo duplicado cadastrado no sistema.", "No duplicate protocols registered."},
	NoOverLinkedProtocols: {"Nenhum protocolo excede o limite de matérias vinculadas.", "No protocol exceeds the linked matter limit."},
	NoOrphanMatters:       {"Nenhuma matéria com protocolo inexistente.", "No matter references a nonexistent protocol."},
	NoUsers:               {"Nenhum usuário cadastrado.", "No users registered."},
	NoAuthors:             {"Nenhum autor cadastrado.", "No authors registered."},
	NoResults:             {"Nenhum registro encontrado.", "No records found."},
}

func init() {
	for key, texts := range catalog {
		mustSet(language.BrazilianPortuguese, key, texts[0])
		mustSet(language.English, key, texts[1])
	}
}

func mustSet(tag language.Tag, key Key, text string) {
	if err := message.SetString(tag, string(key), text); err != nil {
		panic("i18n: register " + string(key) + ": " + err.Error())
	}
}
