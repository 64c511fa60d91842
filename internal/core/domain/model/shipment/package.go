package shipment

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
)

var ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage or RestorePackage")

// Contact is the free-text name and phone of a sender or receiver.
type Contact struct {
	Name  string
	Phone string
}

// Validate reports the first missing part under paramName.
func (c Contact) Validate(paramName string) error {
	if strings.TrimSpace(c.Name) == "" {
		return errs.NewValueIsRequiredErrorWithCause(paramName, errors.New("name is empty"))
	}
	if strings.TrimSpace(c.Phone) == "" {
		return errs.NewValueIsRequiredErrorWithCause(paramName, errors.New("phone is empty"))
	}
	return nil
}

// Intake carries everything an agent supplies, or the system resolves, when a package is
// registered.
type Intake struct {
	Name                string
	Weight              float64
	Value               kernel.Money
	CategoryID          *kernel.UUID
	Sender              Contact
	Receiver            Contact
	SenderAgentID       kernel.UUID
	OriginBranchID      kernel.UUID
	DestinationBranchID kernel.UUID
	Pending             StatusRecord
}

// Package is the shipped item and the aggregate root of a shipment.
//
// Package maintains these invariants:
//   - tracking number is assigned once, at creation, and never changes
//   - shipping fee is derived from the declared value and never set from outside
//   - status only moves forward (see Status)
//   - a delivered package records who received it and when
type Package struct {
	id                  kernel.UUID
	trackingNumber      string
	name                string
	weight              float64
	value               kernel.Money
	shippingFee         kernel.Money
	categoryID          *kernel.UUID
	status              Status
	statusID            kernel.UUID
	senderAgentID       kernel.UUID
	receiverAgentID     *kernel.UUID
	originBranchID      kernel.UUID
	destinationBranchID kernel.UUID
	sender              Contact
	receiver            Contact
	deliveredAt         *time.Time
	createdAt           time.Time
	updatedAt           time.Time

	isConstructed bool
}

// NewPackage registers a package in Pending status. The pending record must be the
// Pending row of the status lookup table.
func NewPackage(id kernel.UUID, trackingNumber string, intake Intake, now time.Time) (*Package, error) {
	now = now.UTC()
	p := &Package{
		categoryID:    intake.CategoryID,
		sender:        intake.Sender,
		receiver:      intake.Receiver,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setName(intake.Name),
		p.setWeight(intake.Weight),
		p.setValue(intake.Value),
		intake.Sender.Validate("sender_details"),
		intake.Receiver.Validate("receiver_details"),
		setRef(&p.senderAgentID, "agent", intake.SenderAgentID),
		setRef(&p.originBranchID, "origin_branch", intake.OriginBranchID),
		setRef(&p.destinationBranchID, "destination_branch", intake.DestinationBranchID),
		p.setStatusRecord(intake.Pending, Pending),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// PackageState is the persisted form of a Package, used to restore it from storage.
type PackageState struct {
	ID                  kernel.UUID
	TrackingNumber      string
	Name                string
	Weight              float64
	Value               kernel.Money
	ShippingFee         kernel.Money
	CategoryID          *kernel.UUID
	Status              Status
	StatusID            kernel.UUID
	SenderAgentID       kernel.UUID
	ReceiverAgentID     *kernel.UUID
	OriginBranchID      kernel.UUID
	DestinationBranchID kernel.UUID
	Sender              Contact
	Receiver            Contact
	DeliveredAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RestorePackage rebuilds a package from storage. The stored fee is kept as is, even if
// the rate has changed since the package was registered.
func RestorePackage(state PackageState) (*Package, error) {
	p := &Package{
		shippingFee:     state.ShippingFee,
		categoryID:      state.CategoryID,
		status:          state.Status,
		statusID:        state.StatusID,
		receiverAgentID: state.ReceiverAgentID,
		sender:          state.Sender,
		receiver:        state.Receiver,
		deliveredAt:     state.DeliveredAt,
		createdAt:       state.CreatedAt,
		updatedAt:       state.UpdatedAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		p.setID(state.ID),
		p.setTrackingNumber(state.TrackingNumber),
		state.Value.Validate(),
		state.ShippingFee.Validate(),
		state.Status.Validate(),
		state.StatusID.Validate(),
		setRef(&p.senderAgentID, "agent", state.SenderAgentID),
		setRef(&p.originBranchID, "origin_branch", state.OriginBranchID),
		setRef(&p.destinationBranchID, "destination_branch", state.DestinationBranchID),
	); err != nil {
		return nil, err
	}
	p.value = state.Value
	p.name = state.Name
	p.weight = state.Weight

	return p, nil
}

func (p *Package) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPackageIsNotConstructed
	}
	return nil
}

func (p *Package) IsEqual(other *Package) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Package) ID() kernel.UUID                  { return p.id }
func (p *Package) TrackingNumber() string           { return p.trackingNumber }
func (p *Package) Name() string                     { return p.name }
func (p *Package) Weight() float64                  { return p.weight }
func (p *Package) Value() kernel.Money              { return p.value }
func (p *Package) ShippingFee() kernel.Money        { return p.shippingFee }
func (p *Package) CategoryID() *kernel.UUID         { return p.categoryID }
func (p *Package) Status() Status                   { return p.status }
func (p *Package) StatusID() kernel.UUID            { return p.statusID }
func (p *Package) SenderAgentID() kernel.UUID       { return p.senderAgentID }
func (p *Package) ReceiverAgentID() *kernel.UUID    { return p.receiverAgentID }
func (p *Package) OriginBranchID() kernel.UUID      { return p.originBranchID }
func (p *Package) DestinationBranchID() kernel.UUID { return p.destinationBranchID }
func (p *Package) Sender() Contact                  { return p.sender }
func (p *Package) Receiver() Contact                { return p.receiver }
func (p *Package) DeliveredAt() *time.Time          { return p.deliveredAt }
func (p *Package) CreatedAt() time.Time             { return p.createdAt }
func (p *Package) UpdatedAt() time.Time             { return p.updatedAt }

// IsDestinedFor reports whether branchID is the package's destination branch.
func (p *Package) IsDestinedFor(branchID kernel.UUID) bool {
	return p.destinationBranchID.IsEqual(branchID)
}

// MarkDelivered confirms receipt by the agent at the destination branch. delivered must be
// the Delivered row of the status lookup table. A package that already is Delivered or
// Canceled is left untouched and a ConflictError is returned.
func (p *Package) MarkDelivered(receiverAgentID kernel.UUID, delivered StatusRecord, now time.Time) error {
	if err := receiverAgentID.Validate(); err != nil {
		return err
	}
	if err := delivered.Validate(); err != nil {
		return err
	}
	if delivered.Status() != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s record cannot confirm a delivery", delivered.Name()),
		)
	}

	next, err := p.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	now = now.UTC()
	p.status = next
	p.statusID = delivered.ID()
	p.receiverAgentID = &receiverAgentID
	p.deliveredAt = &now
	p.updatedAt = now
	return nil
}

func (p *Package) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Package) setTrackingNumber(trackingNumber string) error {
	if !strings.HasPrefix(trackingNumber, TrackingNumberPrefix) || len(trackingNumber) == len(TrackingNumberPrefix) {
		return errs.NewValueIsInvalidErrorWithCause(
			"tracking_number",
			fmt.Errorf("%q does not start with %s", trackingNumber, TrackingNumberPrefix),
		)
	}
	p.trackingNumber = trackingNumber
	return nil
}

func (p *Package) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Package) setWeight(weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not a non-negative number", weight))
	}
	p.weight = weight
	return nil
}

func (p *Package) setValue(value kernel.Money) error {
	if err := value.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("value", err)
	}
	p.value = value
	p.shippingFee = ShippingFee(value)
	return nil
}

func (p *Package) setStatusRecord(record StatusRecord, want Status) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if record.Status() != want {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("a new package must reference the %s record, got %s", want, record.Name()),
		)
	}
	p.status = record.Status()
	p.statusID = record.ID()
	return nil
}

func setRef(dst *kernel.UUID, paramName string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}
	*dst = id
	return nil
}
