// internal/models/types.go
package models

import (
	"errors"
	"time"
)

// Canonical business units. Units scope records; they are data, not tenants.
type Unit string

const (
	UnitAldeota        Unit = "Aldeota"
	UnitParquelandia   Unit = "Parquelândia"
	UnitCambeba        Unit = "Cambeba"
	UnitEusebio        Unit = "Eusébio"
	UnitPoke           Unit = "Poke (Santos Dumont)"
	UnitEstoque        Unit = "Estoque"
	UnitFabrica        Unit = "Fábrica"
	UnitAdministrativo Unit = "Administrativo"
)

// DefaultUnit is the fallback applied when an imported unit string does not
// match any known unit.
const DefaultUnit = UnitAldeota

func Units() []Unit {
	return []Unit{
		UnitAldeota, UnitParquelandia, UnitCambeba, UnitEusebio,
		UnitPoke, UnitEstoque, UnitFabrica, UnitAdministrativo,
	}
}

type OSStatus string

const (
	OSAberta      OSStatus = "Aberta"
	OSEmAndamento OSStatus = "Em Andamento"
	OSAguardando  OSStatus = "Aguardando"
	OSConcluida   OSStatus = "Concluída"
	OSCancelada   OSStatus = "Cancelada"
)

type OSPriority string

const (
	PriorityAlta  OSPriority = "Alta"
	PriorityMedia OSPriority = "Média"
	PriorityBaixa OSPriority = "Baixa"
)

type OSType string

const (
	TypeCorretiva  OSType = "Corretiva"
	TypePreventiva OSType = "Preventiva"
	TypeInstalacao OSType = "Instalação"
	TypeOutros     OSType = "Outros"
)

type ExpenseCategory string

const (
	CategoryPecas     ExpenseCategory = "Peças"
	CategoryMaoDeObra ExpenseCategory = "Mão de Obra"
	CategoryOutros    ExpenseCategory = "Outros"
)

type PaymentMethod string

const (
	PaymentAVista        PaymentMethod = "À vista"
	PaymentBoleto        PaymentMethod = "Boleto"
	PaymentPix           PaymentMethod = "Pix"
	PaymentCartaoCredito PaymentMethod = "Cartão de Crédito"
	PaymentOutros        PaymentMethod = "Outros"
)

type AssetStatus string

const (
	AssetAtivo        AssetStatus = "Ativo"
	AssetEmManutencao AssetStatus = "Em Manutenção"
	AssetBaixado      AssetStatus = "Baixado"
	AssetInativo      AssetStatus = "Inativo"
)

// FallbackAssetCategory is applied when an imported category string does not
// match the category registry.
const FallbackAssetCategory = "Outros"

// DefaultAssetCategories seeds the editable category registry.
func DefaultAssetCategories() []string {
	return []string{
		"TI / Informática",
		"Eletrodomésticos",
		"Mobiliário",
		"Cozinha Industrial",
		"Climatização",
		FallbackAssetCategory,
	}
}

var (
	ErrNotFound           = errors.New("not found")
	ErrPermission         = errors.New("permission denied")
	ErrValidation         = errors.New("validation failed")
	ErrArchived           = errors.New("order is archived")
	ErrSelfDelete         = errors.New("admins cannot remove themselves")
	ErrAssetInMaintenance = errors.New("asset is already in maintenance")
)

// User is the acting identity. Admins see all records, guests get a
// read-only aggregate view, everyone else sees only records they own.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	Initials     string `json:"initials"`
	Color        string `json:"color,omitempty"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	IsAdmin      bool   `json:"isAdmin"`
	IsGuest      bool   `json:"isGuest"`
	PasswordHash string `json:"-"`
}

// HistoryLog is a single append-only line in a service order's history.
type HistoryLog struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
}

// ServiceOrder is a maintenance ticket. History is most-recent-first.
// Once Archived is set the order is read-only everywhere.
type ServiceOrder struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Unit         Unit         `json:"unit"`
	Description  string       `json:"description"`
	Status       OSStatus     `json:"status"`
	Type         OSType       `json:"type"`
	Priority     OSPriority   `json:"priority"`
	OwnerID      string       `json:"ownerId"`
	DateOpened   time.Time    `json:"dateOpened"`
	DateForecast *time.Time   `json:"dateForecast,omitempty"`
	DateClosed   *time.Time   `json:"dateClosed,omitempty"`
	History      []HistoryLog `json:"history"`
	Archived     bool         `json:"archived"`
}

// Expense is a financial line item, optionally linked to a service order.
// Non-admin visibility is derived through that link.
type Expense struct {
	ID                    string          `json:"id"`
	Item                  string          `json:"item"`
	Value                 float64         `json:"value"`
	Date                  time.Time       `json:"date"`
	Supplier              string          `json:"supplier"`
	WarrantyPartsMonths   int             `json:"warrantyPartsMonths"`
	WarrantyServiceMonths int             `json:"warrantyServiceMonths"`
	LinkedOSID            string          `json:"linkedOSId,omitempty"`
	Category              ExpenseCategory `json:"category"`
	PaymentMethod         PaymentMethod   `json:"paymentMethod"`
	Unit                  Unit            `json:"unit"`
	PaymentData           map[string]any  `json:"paymentData,omitempty"`
}

type AssetWarranty struct {
	HasWarranty bool       `json:"hasWarranty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

type InvoiceInfo struct {
	Supplier      string     `json:"supplier,omitempty"`
	InvoiceNumber string     `json:"invoiceNumber,omitempty"`
	InvoiceDate   *time.Time `json:"invoiceDate,omitempty"`
	AttachmentRef string     `json:"attachmentRef,omitempty"`
}

// Asset is a tracked physical item. Status moves to Em Manutenção only via
// a MaintenanceRecord and back to Ativo only via that record's closure.
type Asset struct {
	ID               string        `json:"id"`
	AssetTag         string        `json:"assetTag"`
	Name             string        `json:"name"`
	Category         string        `json:"category"`
	Unit             Unit          `json:"unit"`
	Brand            string        `json:"brand,omitempty"`
	Model            string        `json:"model,omitempty"`
	Description      string        `json:"description,omitempty"`
	Value            float64       `json:"value"`
	Status           AssetStatus   `json:"status"`
	RegistrationDate time.Time     `json:"registrationDate"`
	Warranty         AssetWarranty `json:"warranty"`
	InvoiceInfo      InvoiceInfo   `json:"invoiceInfo"`
	PhotoURL         string        `json:"photoUrl,omitempty"`
	LinkedOSIDs      []string      `json:"linkedOSIds"`
}

// MaintenanceRecord tracks an asset's trip to an external repair provider.
type MaintenanceRecord struct {
	ID                 string     `json:"id"`
	AssetID            string     `json:"assetId"`
	ProviderName       string     `json:"providerName"`
	ContactInfo        string     `json:"contactInfo,omitempty"`
	DateOut            time.Time  `json:"dateOut"`
	DateReturnForecast *time.Time `json:"dateReturnForecast,omitempty"`
	Description        string     `json:"description"`
	Active             bool       `json:"active"`
	DateReturned       *time.Time `json:"dateReturned,omitempty"`
}

type TaskPriority string

const (
	TaskHigh   TaskPriority = "high"
	TaskMedium TaskPriority = "medium"
	TaskLow    TaskPriority = "low"
)

// PersonalTask is a private to-do owned by UserID.
type PersonalTask struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Completed   bool         `json:"completed"`
	Priority    TaskPriority `json:"priority"`
	LinkedOSID  string       `json:"linkedOSId,omitempty"`
}

type Supplier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	ContactInfo string `json:"contactInfo,omitempty"`
}

type NotificationKind string

const (
	NotifNewOS       NotificationKind = "new_os"
	NotifCompletedOS NotificationKind = "completed_os"
	NotifFinance     NotificationKind = "finance"
	NotifOther       NotificationKind = "other"
)

// Notification is an immutable append-only event record. The feed is kept
// most-recent-first.
type Notification struct {
	ID           string           `json:"id"`
	Type         NotificationKind `json:"type"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	LinkID       string           `json:"linkId,omitempty"`
	UserInitials string           `json:"userInitials,omitempty"`
	Date         time.Time        `json:"date"`
	Read         bool             `json:"read"`
}
