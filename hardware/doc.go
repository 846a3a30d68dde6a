// Package hardware is the base package for the VIC-20 emulation core. Its
// sub-packages contain everything required for a headless emulation: the
// CPU, the system bus and its memory map, the two VIA chips, the VIC video
// chip, and the machine package that composes them into a running system.
package hardware
