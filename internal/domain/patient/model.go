package patient

import (
	"strings"
	"time"
)

// Gender values accepted on a patient record.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists every known gender label, in chart display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Status is the clinical status of a patient.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusCritical Status = "critical"
)

// Statuses lists every known status label, in chart display order.
var Statuses = []Status{StatusActive, StatusInactive, StatusCritical}

// BloodType is one of the eight ABO/Rh blood types.
type BloodType string

const (
	BloodAPos  BloodType = "A+"
	BloodANeg  BloodType = "A-"
	BloodBPos  BloodType = "B+"
	BloodBNeg  BloodType = "B-"
	BloodABPos BloodType = "AB+"
	BloodABNeg BloodType = "AB-"
	BloodOPos  BloodType = "O+"
	BloodONeg  BloodType = "O-"
)

// DocumentType classifies an uploaded patient document.
type DocumentType string

const (
	DocMedicalRecord DocumentType = "medical_record"
	DocInsuranceCard DocumentType = "insurance_card"
	DocPhotoID       DocumentType = "photo_id"
	DocTestResult    DocumentType = "test_result"
	DocOther         DocumentType = "other"
)

// Address is a postal address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// EmergencyContact is the person to reach when the patient cannot be.
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
}

// Medication is a single prescribed medication.
type Medication struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	PrescribedBy string `json:"prescribedBy"`
	StartDate    Date   `json:"startDate"`
	EndDate      *Date  `json:"endDate,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// InsuranceInfo is the patient's insurance coverage. Copay and Deductible
// are integer currency units.
type InsuranceInfo struct {
	Provider       string `json:"provider"`
	PolicyNumber   string `json:"policyNumber"`
	GroupNumber    string `json:"groupNumber,omitempty"`
	EffectiveDate  Date   `json:"effectiveDate"`
	ExpirationDate *Date  `json:"expirationDate,omitempty"`
	Copay          int    `json:"copay"`
	Deductible     int    `json:"deductible"`
}

// Document is an uploaded file attached to exactly one patient.
type Document struct {
	ID         string       `json:"id"`
	Type       DocumentType `json:"type"`
	Name       string       `json:"name"`
	UploadDate Date         `json:"uploadDate"`
	FileSize   int64        `json:"fileSize"`
	MimeType   string       `json:"mimeType"`
	URL        string       `json:"url"`
}

// MedicalInfo groups the clinical fields of a patient record.
type MedicalInfo struct {
	Allergies          []string     `json:"allergies"`
	CurrentMedications []Medication `json:"currentMedications"`
	Conditions         []string     `json:"conditions"`
	BloodType          BloodType    `json:"bloodType"`
	LastVisit          Date         `json:"lastVisit"`
	Status             Status       `json:"status"`
}

// Patient is the central record of the service.
type Patient struct {
	ID               string           `json:"id"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	DateOfBirth      Date             `json:"dateOfBirth"`
	Gender           Gender           `json:"gender"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	Address          Address          `json:"address"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	MedicalInfo      MedicalInfo      `json:"medicalInfo"`
	Insurance        InsuranceInfo    `json:"insurance"`
	Documents        []Document       `json:"documents"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// FullName returns "First Last", the only text the search filter matches.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Clone returns a deep copy. Repositories hand out clones so derived views
// never alias store-owned memory.
func (p *Patient) Clone() *Patient {
	cp := *p
	cp.MedicalInfo.Allergies = append([]string(nil), p.MedicalInfo.Allergies...)
	cp.MedicalInfo.Conditions = append([]string(nil), p.MedicalInfo.Conditions...)
	cp.MedicalInfo.CurrentMedications = append([]Medication(nil), p.MedicalInfo.CurrentMedications...)
	for i, m := range cp.MedicalInfo.CurrentMedications {
		if m.EndDate != nil {
			d := *m.EndDate
			cp.MedicalInfo.CurrentMedications[i].EndDate = &d
		}
	}
	cp.Documents = append([]Document(nil), p.Documents...)
	if p.Insurance.ExpirationDate != nil {
		d := *p.Insurance.ExpirationDate
		cp.Insurance.ExpirationDate = &d
	}
	return &cp
}

var validGenders = map[Gender]bool{
	GenderMale: true, GenderFemale: true, GenderOther: true,
}

var validStatuses = map[Status]bool{
	StatusActive: true, StatusInactive: true, StatusCritical: true,
}

// Validate checks the locally enforced constraints before a record is
// handed to a backing store. It reports every failing field at once.
func (p *Patient) Validate(now time.Time) error {
	var verr ValidationError
	if strings.TrimSpace(p.FirstName) == "" {
		verr.Add("firstName", "is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		verr.Add("lastName", "is required")
	}
	if p.DateOfBirth.IsZero() {
		verr.Add("dateOfBirth", "is required")
	} else if !p.DateOfBirth.Time().Before(now) {
		verr.Add("dateOfBirth", "must be in the past")
	}
	if !validGenders[p.Gender] {
		verr.Add("gender", "must be one of male, female, other")
	}
	if p.MedicalInfo.Status != "" && !validStatuses[p.MedicalInfo.Status] {
		verr.Add("medicalInfo.status", "must be one of active, inactive, critical")
	}
	if verr.Empty() {
		return nil
	}
	return &verr
}

// NormalizeDocuments enforces the at-most-one photo_id invariant: the first
// photo_id document is canonical, later ones are dropped.
func NormalizeDocuments(docs []Document) []Document {
	out := docs[:0:0]
	seenPhotoID := false
	for _, d := range docs {
		if d.Type == DocPhotoID {
			if seenPhotoID {
				continue
			}
			seenPhotoID = true
		}
		out = append(out, d)
	}
	return out
}
