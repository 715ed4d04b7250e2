package billing

import "intersdk/pkg/models"

// Address is a Brazilian street address. Complement is optional; the other
// fields are required for issuance.
type Address struct {
	Street     string
	Number     string
	District   string
	City       string
	StateCode  string
	PostalCode string
	Complement string
}

// Person is a payer or final-beneficiary record. TaxID holds the CPF for
// individuals and the CNPJ for corporations, digits only. Phone, when set,
// is 10 or 11 digits with the area code in front.
type Person struct {
	Kind    models.PersonKind
	TaxID   string
	Name    string
	Address *Address
	Email   string
	Phone   string
}

// clone deep-copies the person so a boleto never shares mutable state with
// its caller.
func (p Person) clone() Person {
	if p.Address != nil {
		addr := *p.Address
		p.Address = &addr
	}
	return p
}

// payload flattens the person and its address into the wire block. The phone
// number splits into a two-digit area code and the remaining digits; absent
// optionals stay explicit nulls.
func (p Person) payload() *models.PersonPayload {
	out := &models.PersonPayload{
		CpfCnpj:    p.TaxID,
		TipoPessoa: p.Kind,
		Nome:       p.Name,
	}
	if a := p.Address; a != nil {
		out.Endereco = &a.Street
		out.Numero = &a.Number
		out.Bairro = &a.District
		out.Cidade = &a.City
		out.UF = &a.StateCode
		out.Cep = &a.PostalCode
		if a.Complement != "" {
			out.Complemento = &a.Complement
		}
	}
	if p.Email != "" {
		out.Email = &p.Email
	}
	if len(p.Phone) > 2 {
		ddd := p.Phone[:2]
		rest := p.Phone[2:]
		out.DDD = &ddd
		out.Telefone = &rest
	}
	return out
}

// personFromPayload inverts payload, recomposing the phone from its area
// code and rebuilding the nested address when one is present.
func personFromPayload(in *models.PersonPayload) Person {
	p := Person{
		Kind:  in.TipoPessoa,
		TaxID: in.CpfCnpj,
		Name:  in.Nome,
		Email: strVal(in.Email),
	}
	if in.DDD != nil && in.Telefone != nil && *in.Telefone != "" {
		p.Phone = *in.DDD + *in.Telefone
	}
	if in.Endereco != nil && *in.Endereco != "" {
		p.Address = &Address{
			Street:     *in.Endereco,
			Number:     strVal(in.Numero),
			District:   strVal(in.Bairro),
			City:       strVal(in.Cidade),
			StateCode:  strVal(in.UF),
			PostalCode: strVal(in.Cep),
			Complement: strVal(in.Complemento),
		}
	}
	return p
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
