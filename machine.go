package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pgavlin/lilraster/internal/laser"
)

// machineProfile is the JSON form of a machine profile. Missing or zero fields keep their defaults.
type machineProfile struct {
	LaserPower     float64 `json:"laserPower,omitempty"`
	PulseSeconds   float64 `json:"pulseSeconds,omitempty"`
	MinPulseTicks  int     `json:"minPulseTicks,omitempty"`
	MaxPulseTicks  int     `json:"maxPulseTicks,omitempty"`
	RasterBytesMax int     `json:"rasterBytesMax,omitempty"`
	BaudRate       int     `json:"baudRate,omitempty"`
	Acceleration   float64 `json:"acceleration,omitempty"`
	TravelFeedrate float64 `json:"travelFeedrate,omitempty"`
}

func orFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func (p machineProfile) apply(defaults laser.Machine) laser.Machine {
	return laser.Machine{
		LaserPower:     orFloat(p.LaserPower, defaults.LaserPower),
		PulseSeconds:   orFloat(p.PulseSeconds, defaults.PulseSeconds),
		MinPulseTicks:  orInt(p.MinPulseTicks, defaults.MinPulseTicks),
		MaxPulseTicks:  orInt(p.MaxPulseTicks, defaults.MaxPulseTicks),
		RasterBytesMax: orInt(p.RasterBytesMax, defaults.RasterBytesMax),
		BaudRate:       orInt(p.BaudRate, defaults.BaudRate),
		Acceleration:   orFloat(p.Acceleration, defaults.Acceleration),
		TravelFeedrate: orFloat(p.TravelFeedrate, defaults.TravelFeedrate),
	}
}

func loadMachine(path string) (laser.Machine, error) {
	f, err := os.Open(path)
	if err != nil {
		return laser.Machine{}, err
	}
	defer f.Close()

	var profile machineProfile
	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()
	if err = decoder.Decode(&profile); err != nil {
		return laser.Machine{}, fmt.Errorf("error decoding machine profile: %w", err)
	}

	machine := profile.apply(laser.Lasersaur)
	if err = machine.Validate(); err != nil {
		return laser.Machine{}, err
	}
	return machine, nil
}
