// Package models defines the core domain models for tripwrap.
//
// # Records
//
// The following models are plain records supplied by the data layer and read
// by the calculators without mutation:
//   - Trip: shared context (dates, base currency, budget, members)
//   - Transaction: a shared expense with an equal or custom split
//   - Media: an uploaded photo or video, optionally geotagged
//   - Payment: a settlement that members have recorded as paid
//   - SavedLocation: a user's named place, used to label points of interest
//
// Users are identified by opaque ID strings; identity itself is managed
// outside this service.
//
// # Conventions
//
//  1. Empty strings stand for absent optional values (no pointers for strings).
//  2. Coordinates are pointers because 0 is a valid latitude and longitude.
//  3. Timestamps are kept as the ISO-8601 strings clients send; parsing
//     happens where a calendar day is needed, since features disagree on
//     how a day is derived.
//  4. Relationships use ID strings instead of pointers.
package models
