package bw

import "strconv"

// Option structs below assemble bw argument lists. Flag names are
// pass-through: this layer never interprets them, it only places them
// where the upstream CLI expects them.

type LoginOptions struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Method   *int   `json:"method"`
	Code     string `json:"code"`
	APIKey   bool   `json:"apikey"`
	SSO      bool   `json:"sso"`
}

func (o LoginOptions) Args() []string {
	args := []string{"login"}
	if o.APIKey {
		args = append(args, "--apikey")
	}
	if o.SSO {
		args = append(args, "--sso")
	}
	if o.Email != "" {
		args = append(args, o.Email)
	}
	if o.Password != "" {
		args = append(args, o.Password)
	}
	if o.Method != nil {
		args = append(args, "--method", strconv.Itoa(*o.Method))
	}
	if o.Code != "" {
		args = append(args, "--code", o.Code)
	}
	return args
}

type UnlockOptions struct {
	PasswordEnv  string `json:"passwordenv"`
	PasswordFile string `json:"passwordfile"`
}

func (o UnlockOptions) Args() []string {
	args := []string{"unlock"}
	if o.PasswordEnv != "" {
		args = append(args, "--passwordenv", o.PasswordEnv)
	}
	if o.PasswordFile != "" {
		args = append(args, "--passwordfile", o.PasswordFile)
	}
	return args
}

type SyncOptions struct {
	Last bool `json:"last"`
}

func (o SyncOptions) Args() []string {
	args := []string{"sync"}
	if o.Last {
		args = append(args, "--last")
	}
	return args
}

type ListOptions struct {
	Entity         string `json:"entity"`
	Search         string `json:"search"`
	URL            string `json:"url"`
	FolderID       string `json:"folderid"`
	CollectionID   string `json:"collectionid"`
	OrganizationID string `json:"organizationid"`
	Trash          *bool  `json:"trash"`
}

func (o ListOptions) Args() []string {
	args := []string{"list", o.Entity}
	if o.Search != "" {
		args = append(args, "--search", o.Search)
	}
	if o.URL != "" {
		args = append(args, "--url", o.URL)
	}
	if o.FolderID != "" {
		args = append(args, "--folderid", o.FolderID)
	}
	if o.CollectionID != "" {
		args = append(args, "--collectionid", o.CollectionID)
	}
	if o.OrganizationID != "" {
		args = append(args, "--organizationid", o.OrganizationID)
	}
	if o.Trash != nil {
		args = append(args, "--trash", strconv.FormatBool(*o.Trash))
	}
	return args
}

type GetOptions struct {
	Entity         string `json:"entity"`
	ID             string `json:"id"`
	OrganizationID string `json:"organizationid"`
	Output         string `json:"output"`
}

func (o GetOptions) Args() []string {
	args := []string{"get", o.Entity, o.ID}
	if o.OrganizationID != "" {
		args = append(args, "--organizationid", o.OrganizationID)
	}
	if o.Output != "" {
		args = append(args, "--output", o.Output)
	}
	return args
}

type CreateOptions struct {
	Entity         string `json:"entity"`
	EncodedJSON    string `json:"encoded_json"`
	File           string `json:"file"`
	ItemID         string `json:"itemid"`
	OrganizationID string `json:"organizationid"`
}

func (o CreateOptions) Args() []string {
	args := []string{"create", o.Entity}
	if o.EncodedJSON != "" {
		args = append(args, o.EncodedJSON)
	}
	if o.File != "" {
		args = append(args, "--file", o.File)
	}
	if o.ItemID != "" {
		args = append(args, "--itemid", o.ItemID)
	}
	if o.OrganizationID != "" {
		args = append(args, "--organizationid", o.OrganizationID)
	}
	return args
}

type EditOptions struct {
	Entity         string `json:"entity"`
	ID             string `json:"id"`
	EncodedJSON    string `json:"encoded_json"`
	OrganizationID string `json:"organizationid"`
}

func (o EditOptions) Args() []string {
	args := []string{"edit", o.Entity, o.ID}
	if o.EncodedJSON != "" {
		args = append(args, o.EncodedJSON)
	}
	if o.OrganizationID != "" {
		args = append(args, "--organizationid", o.OrganizationID)
	}
	return args
}

type DeleteOptions struct {
	Entity         string `json:"entity"`
	ID             string `json:"id"`
	Permanent      bool   `json:"permanent"`
	OrganizationID string `json:"organizationid"`
}

func (o DeleteOptions) Args() []string {
	args := []string{"delete", o.Entity, o.ID}
	if o.Permanent {
		args = append(args, "--permanent")
	}
	if o.OrganizationID != "" {
		args = append(args, "--organizationid", o.OrganizationID)
	}
	return args
}

type RestoreOptions struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
}

func (o RestoreOptions) Args() []string {
	return []string{"restore", o.Entity, o.ID}
}

type MoveOptions struct {
	ItemID         string `json:"itemid"`
	OrganizationID string `json:"organizationid"`
	EncodedJSON    string `json:"encoded_json"`
}

func (o MoveOptions) Args() []string {
	args := []string{"move", o.ItemID, o.OrganizationID}
	if o.EncodedJSON != "" {
		args = append(args, o.EncodedJSON)
	}
	return args
}

type ConfirmOptions struct {
	MemberID       string `json:"member_id"`
	OrganizationID string `json:"organizationid"`
}

func (o ConfirmOptions) Args() []string {
	return []string{"confirm", "org-member", o.MemberID, "--organizationid", o.OrganizationID}
}

type DeviceApprovalOptions struct {
	Action         string `json:"action"`
	OrganizationID string `json:"organizationid"`
	RequestID      string `json:"request_id"`
}

func (o DeviceApprovalOptions) Args() []string {
	args := []string{"device-approval", o.Action}
	if o.OrganizationID != "" {
		args = append(args, "--organizationid", o.OrganizationID)
	}
	if o.RequestID != "" {
		args = append(args, o.RequestID)
	}
	return args
}

// ConfigServerOptions sets the self-hosted server. A full server URL wins
// over the per-endpoint overrides.
type ConfigServerOptions struct {
	Server        string `json:"server"`
	WebVault      string `json:"web_vault"`
	API           string `json:"api"`
	Identity      string `json:"identity"`
	Icons         string `json:"icons"`
	Notifications string `json:"notifications"`
	Events        string `json:"events"`
	KeyConnector  string `json:"key_connector"`
}

func (o ConfigServerOptions) Args() []string {
	args := []string{"config", "server"}
	if o.Server != "" {
		return append(args, o.Server)
	}
	if o.WebVault != "" {
		args = append(args, "--web-vault", o.WebVault)
	}
	if o.API != "" {
		args = append(args, "--api", o.API)
	}
	if o.Identity != "" {
		args = append(args, "--identity", o.Identity)
	}
	if o.Icons != "" {
		args = append(args, "--icons", o.Icons)
	}
	if o.Notifications != "" {
		args = append(args, "--notifications", o.Notifications)
	}
	if o.Events != "" {
		args = append(args, "--events", o.Events)
	}
	if o.KeyConnector != "" {
		args = append(args, "--key-connector", o.KeyConnector)
	}
	return args
}

type GenerateOptions struct {
	Lowercase     bool   `json:"lowercase"`
	Uppercase     bool   `json:"uppercase"`
	Number        bool   `json:"number"`
	Special       bool   `json:"special"`
	Length        *int   `json:"length"`
	Passphrase    bool   `json:"passphrase"`
	Separator     string `json:"separator"`
	Words         *int   `json:"words"`
	Capitalize    bool   `json:"capitalize"`
	IncludeNumber bool   `json:"include_number"`
}

func (o GenerateOptions) Args() []string {
	args := []string{"generate"}
	if o.Lowercase {
		args = append(args, "--lowercase")
	}
	if o.Uppercase {
		args = append(args, "--uppercase")
	}
	if o.Number {
		args = append(args, "--number")
	}
	if o.Special {
		args = append(args, "--special")
	}
	if o.Length != nil {
		args = append(args, "--length", strconv.Itoa(*o.Length))
	}
	if o.Passphrase {
		args = append(args, "--passphrase")
	}
	if o.Separator != "" {
		args = append(args, "--separator", o.Separator)
	}
	if o.Words != nil {
		args = append(args, "--words", strconv.Itoa(*o.Words))
	}
	if o.Capitalize {
		args = append(args, "--capitalize")
	}
	if o.IncludeNumber {
		args = append(args, "--includeNumber")
	}
	return args
}

type ExportOptions struct {
	Output         string `json:"output"`
	Format         string `json:"format"`
	Password       string `json:"password"`
	OrganizationID string `json:"organizationid"`
}

func (o ExportOptions) Args() []string {
	args := []string{"export"}
	if o.Output != "" {
		args = append(args, "--output", o.Output)
	}
	if o.Format != "" {
		args = append(args, "--format", o.Format)
	}
	if o.Password != "" {
		args = append(args, "--password", o.Password)
	}
	if o.OrganizationID != "" {
		args = append(args, "--organizationid", o.OrganizationID)
	}
	return args
}

// ImportOptions places --organizationid before the positional format/path
// pair, matching the upstream CLI grammar.
type ImportOptions struct {
	Format         string `json:"format"`
	Path           string `json:"path"`
	OrganizationID string `json:"organizationid"`
}

func (o ImportOptions) Args() []string {
	args := []string{"import"}
	if o.OrganizationID != "" {
		args = append(args, "--organizationid", o.OrganizationID)
	}
	return append(args, o.Format, o.Path)
}

type SendOptions struct {
	Name         string `json:"name"`
	DeleteInDays *int   `json:"delete_in_days"`
	HiddenText   string `json:"hidden_text"`
	FilePath     string `json:"file_path"`
	Password     string `json:"password"`
}

func (o SendOptions) Args() []string {
	args := []string{"send"}
	if o.Name != "" {
		args = append(args, "-n", o.Name)
	}
	if o.DeleteInDays != nil {
		args = append(args, "-d", strconv.Itoa(*o.DeleteInDays))
	}
	if o.HiddenText != "" {
		args = append(args, "--hidden", o.HiddenText)
	}
	if o.FilePath != "" {
		args = append(args, "-f", o.FilePath)
	}
	if o.Password != "" {
		args = append(args, "--password", o.Password)
	}
	return args
}

type ReceiveOptions struct {
	URL      string `json:"url"`
	Password string `json:"password"`
}

func (o ReceiveOptions) Args() []string {
	args := []string{"receive", o.URL}
	if o.Password != "" {
		args = append(args, "--password", o.Password)
	}
	return args
}
